package rtsi

import (
	"math"

	"github.com/marketpulse/ratingengine/internal/models"
)

// EnhancedTuning freezes the bonus-tier thresholds and magnitudes for
// the "optimized" RTSI reshaping. The precise weights are an empirically
// tuned constant of the algorithm (open question: frozen here rather
// than re-derived). applyEnhanced always uses DefaultEnhancedTuning;
// neither rtsi.Config nor the engine configuration can override it.
type EnhancedTuning struct {
	DataPointTiers    []tierBonus
	MeanRatingTiers   []tierBonus
	StdDevTiers       []tierBonus
	QualityMultiplier []qualityTier
}

type tierBonus struct {
	Threshold float64
	Bonus     float64
}

type qualityTier struct {
	MinQuality float64
	Multiplier float64
}

// DefaultEnhancedTuning is the frozen bonus schedule.
func DefaultEnhancedTuning() EnhancedTuning {
	return EnhancedTuning{
		DataPointTiers: []tierBonus{
			{30, 8}, {20, 6}, {15, 5}, {10, 4}, {7, 3}, {5, 2},
		},
		MeanRatingTiers: []tierBonus{
			{4.5, 15}, {4.2, 13}, {3.8, 11}, {3.3, 8}, {2.8, 5}, {2.3, 2}, {1.8, 0}, {-1, -5},
		},
		StdDevTiers: []tierBonus{
			{0.15, 10}, {0.4, 8}, {0.7, 6}, {1.1, 4}, {1.6, 2}, {2.5, -3},
		},
		QualityMultiplier: []qualityTier{
			{0.9, 1.00}, {0.75, 0.98}, {0.6, 0.96}, {0.4, 0.94}, {0, 0.90},
		},
	}
}

// applyEnhanced reshapes the base 0-1 score into the 0-100 "optimized"
// score, per optimized_enhanced_rtsi.py's _optimize_enhanced_score_range
// and _apply_quality_adjustment.
func applyEnhanced(result models.RtsiResult, valid []float64, base01, fillRatio float64) models.RtsiResult {
	tuning := DefaultEnhancedTuning()

	score := base01 * 88

	score += dataPointBonus(len(valid), tuning)

	mean := meanOf(valid)
	score += meanRatingBonus(mean, tuning)

	std := stddevOf(valid, mean)
	score += stddevBonus(std, tuning)

	totalChange := 0.0
	if len(valid) > 0 {
		totalChange = valid[len(valid)-1] - valid[0]
	}
	trendBonus, trendConditionMet := trendShapeBonus(totalChange, result.RSquared)
	score += trendBonus

	conditions := 0
	if len(valid) >= 15 {
		conditions++
	}
	if mean >= 3.8 {
		conditions++
	}
	if std <= 0.7 {
		conditions++
	}
	if trendConditionMet {
		conditions++
	}
	score += excellentConditionsBonus(conditions)

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	quality := 1 - fillRatio
	multiplier := qualityMultiplier(quality, tuning)
	adjusted := score * multiplier
	floor := 0.0
	if quality >= 0.6 {
		floor = score * 0.03
	}
	adjusted = math.Max(adjusted, floor)
	if adjusted < 0 {
		adjusted = 0
	}
	if adjusted > 100 {
		adjusted = 100
	}

	result.Score = adjusted
	result.Trend = sevenLevelTrend(adjusted)
	result.Confidence = math.Min(1, result.Confidence*quality+0.0) // combined with quality, capped
	if result.Confidence > 1 {
		result.Confidence = 1
	}
	result.Enhanced = true
	return result
}

func dataPointBonus(n int, tuning EnhancedTuning) float64 {
	for _, tier := range tuning.DataPointTiers {
		if float64(n) >= tier.Threshold {
			return tier.Bonus
		}
	}
	return 0
}

func meanRatingBonus(mean float64, tuning EnhancedTuning) float64 {
	for _, tier := range tuning.MeanRatingTiers {
		if mean >= tier.Threshold {
			return tier.Bonus
		}
	}
	return 0
}

func stddevBonus(std float64, tuning EnhancedTuning) float64 {
	for _, tier := range tuning.StdDevTiers {
		if std <= tier.Threshold {
			return tier.Bonus
		}
	}
	return 0
}

func trendShapeBonus(totalChange, rSquared float64) (bonus float64, met bool) {
	switch {
	case totalChange > 0.8 && rSquared > 0.4:
		return 10, true
	case totalChange > 0.4 && rSquared > 0.3:
		return 7, true
	case totalChange > 0.15 && rSquared > 0.25:
		return 4, true
	default:
		return 0, false
	}
}

func excellentConditionsBonus(conditions int) float64 {
	switch {
	case conditions >= 4:
		return 5
	case conditions == 3:
		return 3
	case conditions == 2:
		return 1
	default:
		return 0
	}
}

func qualityMultiplier(quality float64, tuning EnhancedTuning) float64 {
	for _, tier := range tuning.QualityMultiplier {
		if quality >= tier.MinQuality {
			return tier.Multiplier
		}
	}
	return 0.90
}

func meanOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func stddevOf(xs []float64, mean float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		d := x - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)))
}
