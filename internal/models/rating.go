// Package models defines the shared data model for the rating analytics
// engine: ratings, per-entity series, the loaded dataset, and the result
// records produced by each calculator.
package models

// Rating is one of the eight ordered analyst-rating categories, from
// strongest-bearish to strongest-bullish.
type Rating int

const (
	StrongBear Rating = iota
	MidBear
	SmallBear
	MicroBear
	MicroBull
	SmallBull
	MidBull
	StrongBull
)

// Missing marks a rating cell with no recorded value. It is distinct
// from any Rating and never produces a score.
const Missing Rating = -1

// ratingTokens is the canonical text token for each rating, in the raw
// table format (also accepted on parse, case-insensitively).
var ratingTokens = map[Rating]string{
	StrongBear: "strong-bear",
	MidBear:    "mid-bear",
	SmallBear:  "small-bear",
	MicroBear:  "micro-bear",
	MicroBull:  "micro-bull",
	SmallBull:  "small-bull",
	MidBull:    "mid-bull",
	StrongBull: "strong-bull",
}

var tokenRatings = func() map[string]Rating {
	m := make(map[string]Rating, len(ratingTokens))
	for r, tok := range ratingTokens {
		m[tok] = r
	}
	return m
}()

// MissingToken is the raw-table token for a missing cell.
const MissingToken = "-"

// String returns the canonical text token for the rating, or the
// missing token for Missing.
func (r Rating) String() string {
	if r == Missing {
		return MissingToken
	}
	if tok, ok := ratingTokens[r]; ok {
		return tok
	}
	return MissingToken
}

// IsBullish reports whether the rating is one of the four bullish categories.
func (r Rating) IsBullish() bool {
	return r >= MicroBull && r <= StrongBull
}

// IsBearish reports whether the rating is one of the four bearish categories.
func (r Rating) IsBearish() bool {
	return r >= StrongBear && r <= MicroBear
}
