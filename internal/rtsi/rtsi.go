// Package rtsi computes the Rating Trend Strength Index for a single
// stock's interpolated rating series: a 0-100 score summarizing the
// direction, consistency, and magnitude of the stock's rating
// trajectory, plus the "optimized" enhanced variant.
package rtsi

import (
	"math"

	"github.com/marketpulse/ratingengine/internal/interpolate"
	"github.com/marketpulse/ratingengine/internal/models"
	"github.com/marketpulse/ratingengine/internal/ratingscale"
)

// Config carries the tunables from the engine's rtsi.* configuration
// section.
type Config struct {
	MinDataPoints int
	PThreshold    float64
	Weights       [3]float64 // consistency, significance, amplitude
	BaseFloor     float64
	Enhanced      bool
}

// DefaultConfig mirrors the engine's default rtsi.* configuration.
func DefaultConfig() Config {
	return Config{
		MinDataPoints: 3,
		PThreshold:    0.1,
		Weights:       [3]float64{0.3, 0.3, 0.4},
		BaseFloor:     5,
		Enhanced:      false,
	}
}

// trendDeadband is the per-step slope magnitude below which a
// significant trend is labeled "sideways" rather than up/down.
const trendDeadband = 0.02

// Calculate produces a RtsiResult for one stock's already-interpolated
// series. fillRatio is the series' interpolation ratio from C2, carried
// through for the quality-warning diagnostics.
func Calculate(series models.RatingSeries, fillRatio float64, cfg Config) models.RtsiResult {
	valid := make([]float64, 0, len(series))
	for _, r := range series {
		if r != models.Missing {
			valid = append(valid, float64(ratingscale.ScoreOrdinal(r)))
		}
	}

	if len(valid) < cfg.MinDataPoints {
		return models.RtsiResult{
			Score:      0,
			Trend:      models.TrendInsufficient,
			Confidence: 0,
			SampleSize: len(valid),
			Reason:     "fewer than minimum valid data points",
		}
	}

	n := len(valid)
	slope, _, rSquared, pValue := linregress(valid)

	if math.IsNaN(slope) || math.IsNaN(rSquared) {
		return models.RtsiResult{
			Score:      0,
			Trend:      models.TrendUnclear,
			Confidence: 0,
			SampleSize: n,
			Reason:     "degenerate regression fit",
		}
	}

	consistency := rSquared
	significance := 0.0
	if pValue < cfg.PThreshold {
		significance = math.Max(0, 1-pValue)
	}
	amplitude := math.Min(1, math.Abs(slope)*float64(n)/7)

	base := 100 * (consistency*cfg.Weights[0] + significance*cfg.Weights[1] + amplitude*cfg.Weights[2])
	if base < cfg.BaseFloor && (consistency > 0.1 || amplitude > 0.1) {
		base = cfg.BaseFloor
	}

	trend := trendLabel(slope, significance)

	recentScore := valid[n-1]
	scoreChange5d := 0.0
	if n >= 5 {
		scoreChange5d = valid[n-1] - valid[n-5]
	}

	result := models.RtsiResult{
		Score:              base,
		Trend:              trend,
		Confidence:         significance,
		Slope:              slope,
		RSquared:           rSquared,
		RecentScore:        recentScore,
		ScoreChange5D:      scoreChange5d,
		SampleSize:         n,
		InterpolationRatio: fillRatio,
		Warnings:           interpolate.QualityWarnings(fillRatio),
	}

	if cfg.Enhanced {
		return applyEnhanced(result, valid, base/100, fillRatio)
	}
	return result
}

// trendLabel derives the base-algorithm trend from slope, gated on
// significance: a regression that isn't significant (significance<0.1)
// is "unclear" regardless of its slope's sign.
func trendLabel(slope, significance float64) models.TrendLabel {
	if significance < 0.1 {
		return models.TrendUnclear
	}
	switch {
	case slope > trendDeadband:
		return models.TrendModerateBull
	case slope < -trendDeadband:
		return models.TrendModerateBear
	default:
		return models.TrendSideways
	}
}

// sevenLevelTrend maps a final 0-100 score to the uniform seven-level
// vocabulary used by the enhanced variant (thresholds 75/60/50/40/30/20).
// MSCI's market state uses its own thresholds (70/60/50/40/30/23).
func sevenLevelTrend(score float64) models.TrendLabel {
	switch {
	case score >= 75:
		return models.TrendStrongBull
	case score >= 60:
		return models.TrendModerateBull
	case score >= 50:
		return models.TrendWeakBull
	case score >= 40:
		return models.TrendNeutral
	case score >= 30:
		return models.TrendWeakBear
	case score >= 20:
		return models.TrendModerateBear
	default:
		return models.TrendStrongBear
	}
}
