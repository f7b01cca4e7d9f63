// Package ratingscale maps the eight ordered rating categories to the two
// accepted numeric scoring schemes and parses raw table tokens into ratings.
package ratingscale

import (
	"strings"

	"github.com/marketpulse/ratingengine/internal/models"
)

// ScoreOrdinal returns the integer ordinal 0..7 for a rating. Missing has
// no ordinal score; callers must check IsMissing first.
func ScoreOrdinal(r models.Rating) int {
	return int(r)
}

// ScoreLinear returns the piecewise-linear score 12.5..100.0 for a rating:
// 12.5 + 12.5*ordinal. The "neutral" boundary in this scheme is 50.0
// (micro-bear), not a midpoint value.
func ScoreLinear(r models.Rating) float64 {
	return 12.5 + 12.5*float64(ScoreOrdinal(r))
}

// IsMissing reports whether the cell is the missing sentinel.
func IsMissing(r models.Rating) bool {
	return r == models.Missing
}

// Parse converts a raw table token into a Rating, matching rating tokens
// case-insensitively. Unrecognized tokens (including the empty string)
// parse as Missing.
func Parse(token string) models.Rating {
	if token == "" || token == models.MissingToken {
		return models.Missing
	}
	if r, ok := tokenLookup[strings.ToLower(token)]; ok {
		return r
	}
	return models.Missing
}

var tokenLookup = map[string]models.Rating{
	"strong-bear": models.StrongBear,
	"mid-bear":    models.MidBear,
	"small-bear":  models.SmallBear,
	"micro-bear":  models.MicroBear,
	"micro-bull":  models.MicroBull,
	"small-bull":  models.SmallBull,
	"mid-bull":    models.MidBull,
	"strong-bull": models.StrongBull,
}
