package msci

import (
	"math"

	"github.com/marketpulse/ratingengine/internal/models"
)

// baseRisk is the market-state's unadjusted risk category, before the
// extreme-state and trend-volatility adjustments are applied.
type baseRisk string

const (
	baseExtremelyHigh  baseRisk = "extremely_high"
	baseLow            baseRisk = "low"
	baseMedium         baseRisk = "medium"
	baseMediumHigh     baseRisk = "medium_high"
	baseHigh           baseRisk = "high"
	baseHighOpportunity baseRisk = "high_opportunity"
)

func baseRiskFor(state models.MarketState) baseRisk {
	switch state {
	case models.StateExtremeEuphoria:
		return baseExtremelyHigh
	case models.StateHealthyOptimism:
		return baseLow
	case models.StateCautiousOptimism, models.StateNeutralSentiment:
		return baseMedium
	case models.StateMildPessimism:
		return baseMediumHigh
	case models.StateSignificantPessimism:
		return baseHigh
	case models.StatePanicSelling:
		return baseHighOpportunity
	default:
		return baseMedium
	}
}

// riskKey is (base risk, extreme-state adjustment, trend adjustment).
type riskKey struct {
	base      baseRisk
	extreme   int
	trendSwing int
}

var riskMatrix = map[riskKey]models.RiskLevel{
	{baseExtremelyHigh, 0, 0}:    models.RiskExtremelyHighBubbleWarning,
	{baseExtremelyHigh, 1, 0}:    models.RiskExtremelyHighBubbleConfirmed,
	{baseHighOpportunity, 0, 0}:  models.RiskHighReturnBottomOpportunity,
	{baseHighOpportunity, 1, 0}:  models.RiskContrarianPanicBottom,
	{baseHigh, 0, 0}:             models.RiskHigh,
	{baseHigh, 1, 0}:             models.RiskExtremelyHigh,
	{baseMediumHigh, 0, 0}:       models.RiskMediumHigh,
	{baseMedium, 0, 0}:           models.RiskMedium,
	{baseLow, 0, 0}:              models.RiskLow,
	{baseLow, 1, 0}:              models.RiskMediumWatchExtremeSentiment,
}

// assessRiskLevel maps (market_state, extreme_state, |trend_5d|>15) to
// one of the stable risk-level tokens. A combination with no specific
// entry falls back to the (base, extreme) entry without the trend
// adjustment, then to the base category's non-adjusted entry, and
// ultimately to RiskMedium, matching the source algorithm's default.
// No matrix entry carries the trend adjustment, so |trend_5d|>15 does
// not change the returned level.
func assessRiskLevel(state models.MarketState, extreme models.ExtremeState, trend5d float64) models.RiskLevel {
	base := baseRiskFor(state)

	extremeAdj := 0
	if extreme == models.ExtremeBull || extreme == models.ExtremeBear {
		extremeAdj = 1
	}
	trendAdj := 0
	if math.Abs(trend5d) > 15 {
		trendAdj = 1
	}

	if level, ok := riskMatrix[riskKey{base, extremeAdj, trendAdj}]; ok {
		return level
	}
	if level, ok := riskMatrix[riskKey{base, extremeAdj, 0}]; ok {
		return level
	}
	if level, ok := riskMatrix[riskKey{base, 0, 0}]; ok {
		return level
	}
	return models.RiskMedium
}
