// Package msci computes the Market Sentiment Composite Index: one
// composite score per trading day, blending weighted mean sentiment,
// bull/bear ratio, and participation, plus an aggregate "current"
// reading with trend, volatility, market state, and risk level.
package msci

import (
	"math"
	"math/rand"

	"github.com/marketpulse/ratingengine/internal/interpolate"
	"github.com/marketpulse/ratingengine/internal/models"
	"github.com/marketpulse/ratingengine/internal/ratingscale"
)

// Config carries the tunables from the engine's msci.* configuration
// section.
type Config struct {
	MinRatedPerDay    int
	UseEnhanced       bool
	VolumeRatioJitter bool
	// Jitter, when VolumeRatioJitter is set, supplies the perturbation
	// that stands in for the source algorithm's random.uniform(-0.2,
	// 0.2). When nil, a uniform draw from [-0.2, 0.2) is used; tests can
	// stub it for determinism.
	Jitter func() float64
}

// DefaultConfig mirrors the engine's default msci.* configuration.
// VolumeRatioJitter defaults off: the source's random perturbation is a
// modeling artifact kept behind a flag for reproducibility.
func DefaultConfig() Config {
	return Config{
		MinRatedPerDay:    30,
		UseEnhanced:       false,
		VolumeRatioJitter: false,
	}
}

const (
	minDays            = 5
	historyLimit       = 30
	strongBullShareCap = 0.02
	midBearShareCap    = 0.25
	extremeBullBonus   = 10
	extremeBearPenalty = 15

	enhancedIndexWeight = 0.20
	enhancedRawWeight   = 0.80
	enhancedLift        = 1.15
	enhancedCap         = 80
	enhancedFallback    = 50
)

// dayStats is the per-day working state the aggregate functions need
// beyond what is exposed on models.MsciDay.
type dayStats struct {
	day                models.MsciDay
	participation      float64
	bullBearRatio      float64
	extreme            models.ExtremeState
	indexRating        float64
	hasIndexRating     bool
}

// Calculate produces the whole-market MsciResult. series holds every
// stock's already-interpolated rating series; fillRatios holds the
// matching per-stock interpolation ratio (same index alignment);
// indexSeries, required only for the enhanced variant, holds the
// interpolated rating series of the index-constituent stocks, whose
// per-day mean linear-scheme score is the index rating (Missing cells
// are skipped); dates labels each date column.
func Calculate(series []models.RatingSeries, fillRatios []float64, indexSeries []models.RatingSeries, dates []string, cfg Config) models.MsciResult {
	days := seriesLength(series)
	if days < minDays {
		return models.MsciResult{
			MarketState: models.StatePanicSelling,
			RiskLevel:   models.RiskMedium,
			Reason:      "fewer than minimum date columns",
		}
	}

	totalStocks := len(series)
	stats := make([]dayStats, 0, days)

	for d := 0; d < days; d++ {
		ds, ok := calculateDay(series, fillRatios, indexSeries, dates, d, totalStocks, cfg)
		if !ok {
			continue
		}
		stats = append(stats, ds)
	}

	if len(stats) == 0 {
		return models.MsciResult{
			MarketState: models.StatePanicSelling,
			RiskLevel:   models.RiskMedium,
			Reason:      "no day met the minimum rated-stock threshold",
		}
	}

	latest := stats[len(stats)-1]
	current := latest.day.Score
	state := determineMarketState(current)
	trend5d := trend5D(stats)
	volatility := marketVolatility(stats)
	avgInterp := avgInterpolation(stats)
	warnings := interpolate.QualityWarnings(avgInterp)
	volumeRatio := computeVolumeRatio(latest.participation, cfg)
	riskLevel := assessRiskLevel(state, latest.extreme, trend5d)

	history := make([]models.MsciDay, len(stats))
	for i, s := range stats {
		history[i] = s.day
	}
	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}

	result := models.MsciResult{
		CurrentScore:     current,
		MarketState:      state,
		Trend5D:          trend5d,
		Volatility:       volatility,
		Participation:    latest.participation,
		BullBearRatio:    latest.bullBearRatio,
		VolumeRatio:      volumeRatio,
		ExtremeState:     latest.extreme,
		RiskLevel:        riskLevel,
		History:          history,
		AvgInterpolation: avgInterp,
		Warnings:         warnings,
	}

	if !cfg.UseEnhanced {
		return result
	}

	result.Enhanced = true
	result.AlgorithmID = "msci-d"
	result.CurrentScore = enhancedScore(current, latest)
	result.MarketState = determineMarketState(result.CurrentScore)
	result.RiskLevel = assessRiskLevel(result.MarketState, latest.extreme, trend5d)
	return result
}

func enhancedScore(raw float64, latest dayStats) float64 {
	indexRating := float64(enhancedFallback)
	if latest.hasIndexRating {
		indexRating = latest.indexRating
	}
	blended := enhancedLift * (enhancedIndexWeight*raw + enhancedRawWeight*indexRating)
	return math.Min(blended, enhancedCap)
}

func seriesLength(series []models.RatingSeries) int {
	if len(series) == 0 {
		return 0
	}
	return len(series[0])
}

func calculateDay(series []models.RatingSeries, fillRatios []float64, indexSeries []models.RatingSeries, dates []string, d, totalStocks int, cfg Config) (dayStats, bool) {
	var bullish, bearish, totalRated, strongBull, midBear int
	var weightedSum float64
	var interpSum float64

	for i, s := range series {
		if d >= len(s) {
			continue
		}
		r := s[d]
		if r == models.Missing {
			continue
		}
		totalRated++
		weightedSum += ratingscale.ScoreLinear(r)
		if r.IsBullish() {
			bullish++
		}
		if r.IsBearish() {
			bearish++
		}
		if r == models.StrongBull {
			strongBull++
		}
		if r == models.MidBear {
			midBear++
		}
		if i < len(fillRatios) {
			interpSum += fillRatios[i]
		}
	}

	if totalRated < cfg.MinRatedPerDay {
		return dayStats{}, false
	}

	bullBearRatio := 10.0
	if bearish > 0 {
		bullBearRatio = math.Min(10, float64(bullish)/float64(bearish))
	}

	avgSentiment := weightedSum / float64(totalRated)
	participation := float64(totalRated) / float64(totalStocks)

	sentimentNorm := (avgSentiment - 12.5) / 87.5
	ratioNorm := math.Min(bullBearRatio/2, 1)
	participationNorm := math.Min(participation/0.5, 1)

	raw := 100 * (0.5*sentimentNorm + 0.3*ratioNorm + 0.2*participationNorm)

	strongBullShare := float64(strongBull) / float64(totalStocks)
	midBearShare := float64(midBear) / float64(totalStocks)
	extreme := models.ExtremeNormal
	switch {
	case strongBullShare > strongBullShareCap:
		raw += extremeBullBonus
		extreme = models.ExtremeBull
	case midBearShare > midBearShareCap:
		raw -= extremeBearPenalty
		extreme = models.ExtremeBear
	}
	raw = clip(raw, 0, 100)

	interpRatio := 0.0
	if totalStocks > 0 {
		interpRatio = interpSum / float64(totalStocks)
	}

	date := dayIndexKey(d)
	if d < len(dates) {
		date = dates[d]
	}

	indexRating, hasIndexRating := indexDayMean(indexSeries, d)

	return dayStats{
		day: models.MsciDay{
			Date:               date,
			Score:              raw,
			InterpolationRatio: interpRatio,
			Warnings:           interpolate.QualityWarnings(interpRatio),
		},
		participation:  participation,
		bullBearRatio:  bullBearRatio,
		extreme:        extreme,
		indexRating:    indexRating,
		hasIndexRating: hasIndexRating,
	}, true
}

func indexDayMean(indexSeries []models.RatingSeries, d int) (float64, bool) {
	var sum float64
	var count int
	for _, s := range indexSeries {
		if d >= len(s) || s[d] == models.Missing {
			continue
		}
		sum += ratingscale.ScoreLinear(s[d])
		count++
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

func dayIndexKey(d int) string {
	return "day-" + itoa(d)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

func determineMarketState(score float64) models.MarketState {
	switch {
	case score >= 70:
		return models.StateExtremeEuphoria
	case score >= 60:
		return models.StateHealthyOptimism
	case score >= 50:
		return models.StateCautiousOptimism
	case score >= 40:
		return models.StateNeutralSentiment
	case score >= 30:
		return models.StateMildPessimism
	case score >= 23:
		return models.StateSignificantPessimism
	default:
		return models.StatePanicSelling
	}
}

func trend5D(stats []dayStats) float64 {
	if len(stats) < 10 {
		return 0
	}
	n := len(stats)
	recent := meanScore(stats[n-5:])
	previous := meanScore(stats[n-10 : n-5])
	return recent - previous
}

func meanScore(window []dayStats) float64 {
	if len(window) == 0 {
		return 0
	}
	var sum float64
	for _, s := range window {
		sum += s.day.Score
	}
	return sum / float64(len(window))
}

func marketVolatility(stats []dayStats) float64 {
	if len(stats) < 5 {
		return 0
	}
	n := len(stats)
	start := 0
	if n > 10 {
		start = n - 10
	}
	window := stats[start:]

	weights := make([]float64, len(window))
	for i, s := range window {
		w := 1 - s.day.InterpolationRatio*0.5
		if w < 0.3 {
			w = 0.3
		}
		weights[i] = w
	}

	var weightSum float64
	for _, w := range weights {
		weightSum += w
	}
	if weightSum == 0 {
		return 0
	}

	var weightedMean float64
	for i, s := range window {
		weightedMean += s.day.Score * weights[i]
	}
	weightedMean /= weightSum

	var weightedVariance float64
	for i, s := range window {
		diff := s.day.Score - weightedMean
		weightedVariance += weights[i] * diff * diff
	}
	weightedVariance /= weightSum

	volatility := math.Sqrt(weightedVariance)
	return clip(volatility, 0, 50)
}

func avgInterpolation(stats []dayStats) float64 {
	if len(stats) == 0 {
		return 0
	}
	var sum float64
	for _, s := range stats {
		sum += s.day.InterpolationRatio
	}
	return sum / float64(len(stats))
}

func computeVolumeRatio(participation float64, cfg Config) float64 {
	ratio := participation * 2.0
	if cfg.VolumeRatioJitter {
		jitter := cfg.Jitter
		if jitter == nil {
			jitter = func() float64 { return rand.Float64()*0.4 - 0.2 }
		}
		ratio += jitter()
	}
	return clip(ratio, 0.1, 5.0)
}

func clip(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
