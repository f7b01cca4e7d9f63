// Package irsi computes the Industry Relative Strength Index: how far
// an industry's mean rating departs from the whole market's over the
// same window.
package irsi

import (
	"math"

	"github.com/marketpulse/ratingengine/internal/models"
	"github.com/marketpulse/ratingengine/internal/ratingscale"
)

// Config carries the tunables from the engine's irsi.* configuration
// section.
type Config struct {
	MinStocks int
}

// DefaultConfig mirrors the engine's default irsi.* configuration.
func DefaultConfig() Config {
	return Config{MinStocks: 2}
}

// halfOrdinalSpan is half the ordinal rating span (0..7), used to scale
// the mean spread into the roughly [-100,+100] IRSI range.
const halfOrdinalSpan = 3.5

// Calculate compares industryMembers' per-day mean (interpolated,
// ordinal-scheme) rating against allStocks' per-day mean over the last
// window date columns (window<=0 means the full history).
func Calculate(industryMembers, allStocks []models.RatingSeries, window int, cfg Config) models.IrsiResult {
	if len(industryMembers) < cfg.MinStocks {
		return models.IrsiResult{
			Score:  0,
			Status: models.StatusInsufficientData,
			Reason: "fewer than minimum industry members",
		}
	}

	days := seriesLength(allStocks)
	start := 0
	if window > 0 && window < days {
		start = days - window
	}
	if days == 0 || start >= days {
		return models.IrsiResult{
			Score:  0,
			Status: models.StatusInsufficientData,
			Reason: "no date columns available",
		}
	}

	var spreadSum float64
	var spreadCount int
	for d := start; d < days; d++ {
		industryMean, industryOK := dayMean(industryMembers, d)
		marketMean, marketOK := dayMean(allStocks, d)
		if !industryOK || !marketOK {
			continue
		}
		spreadSum += industryMean - marketMean
		spreadCount++
	}

	if spreadCount == 0 {
		return models.IrsiResult{
			Score:  0,
			Status: models.StatusInsufficientData,
			Reason: "no valid date columns available",
		}
	}

	meanSpread := spreadSum / float64(spreadCount)
	score := 100 * meanSpread / halfOrdinalSpan
	score = clip(score, -100, 100)

	return models.IrsiResult{
		Score:      score,
		Status:     statusFor(score),
		SampleSize: len(industryMembers),
	}
}

func seriesLength(series []models.RatingSeries) int {
	if len(series) == 0 {
		return 0
	}
	return len(series[0])
}

func dayMean(series []models.RatingSeries, d int) (mean float64, ok bool) {
	var sum float64
	var count int
	for _, s := range series {
		if d >= len(s) {
			continue
		}
		if s[d] == models.Missing {
			continue
		}
		sum += float64(ratingscale.ScoreOrdinal(s[d]))
		count++
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

func statusFor(score float64) models.IrsiStatus {
	switch {
	case score >= 20:
		return models.StatusStrongOutperform
	case score >= 5:
		return models.StatusWeakOutperform
	case score > -5:
		return models.StatusNeutral
	case score > -20:
		return models.StatusWeakUnderperform
	default:
		return models.StatusStrongUnderperform
	}
}

func clip(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
