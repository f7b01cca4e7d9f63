package msci

import (
	"testing"

	"github.com/marketpulse/ratingengine/internal/models"
	"github.com/stretchr/testify/assert"
)

func constSeries(r models.Rating, days int) models.RatingSeries {
	s := make(models.RatingSeries, days)
	for i := range s {
		s[i] = r
	}
	return s
}

func zeroRatios(n int) []float64 {
	return make([]float64, n)
}

// S6 — 40% mid-bear across 1,000 stocks: 50 bullish (micro-bull), 400
// mid-bear plus 450 small-bear, 900 total rated out of 1,000 (100
// missing). Expect extreme_state "bear" (mid-bear share 0.4 > 0.25,
// strong-bull share 0), a 15-point penalty, and a pessimistic market
// state.
func TestCalculate_MidBearExtreme(t *testing.T) {
	const total = 1000
	days := 6
	var series []models.RatingSeries

	for i := 0; i < 50; i++ {
		series = append(series, constSeries(models.MicroBull, days))
	}
	for i := 0; i < 400; i++ {
		series = append(series, constSeries(models.MidBear, days))
	}
	for i := 0; i < 450; i++ {
		series = append(series, constSeries(models.SmallBear, days))
	}
	for len(series) < total {
		series = append(series, constSeries(models.Missing, days))
	}

	result := Calculate(series, zeroRatios(total), nil, nil, DefaultConfig())

	assert.Equal(t, models.ExtremeBear, result.ExtremeState)
	assert.Contains(t, []models.MarketState{models.StateSignificantPessimism, models.StatePanicSelling}, result.MarketState)
}

func TestCalculate_InsufficientDays(t *testing.T) {
	series := []models.RatingSeries{constSeries(models.MidBull, 3)}
	result := Calculate(series, zeroRatios(1), nil, nil, DefaultConfig())

	assert.Equal(t, 0.0, result.CurrentScore)
	assert.Empty(t, result.History)
	assert.NotEmpty(t, result.Reason)
}

func TestCalculate_BelowMinRatedSkipsDay(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinRatedPerDay = 30
	days := 6
	series := []models.RatingSeries{
		constSeries(models.MidBull, days),
		constSeries(models.MidBull, days),
	}
	result := Calculate(series, zeroRatios(2), nil, nil, cfg)

	assert.NotEmpty(t, result.Reason)
	assert.Empty(t, result.History)
}

func TestCalculate_ScoreWithinBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinRatedPerDay = 10
	days := 12
	var series []models.RatingSeries
	for i := 0; i < 20; i++ {
		series = append(series, constSeries(models.StrongBull, days))
	}
	for i := 0; i < 20; i++ {
		series = append(series, constSeries(models.StrongBear, days))
	}

	result := Calculate(series, zeroRatios(40), nil, nil, cfg)

	assert.GreaterOrEqual(t, result.CurrentScore, 0.0)
	assert.LessOrEqual(t, result.CurrentScore, 100.0)
	assert.LessOrEqual(t, len(result.History), historyLimit)
}

func TestCalculate_EnhancedCappedAt80(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinRatedPerDay = 10
	cfg.UseEnhanced = true
	days := 12
	var series, index []models.RatingSeries
	for i := 0; i < 40; i++ {
		series = append(series, constSeries(models.StrongBull, days))
	}
	index = append(index, constSeries(models.StrongBull, days))

	result := Calculate(series, zeroRatios(40), index, nil, cfg)

	assert.True(t, result.Enhanced)
	assert.Equal(t, "msci-d", result.AlgorithmID)
	assert.LessOrEqual(t, result.CurrentScore, 80.0)
}

func TestCalculate_EnhancedFallsBackWithoutIndex(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinRatedPerDay = 10
	cfg.UseEnhanced = true
	days := 12
	var series []models.RatingSeries
	for i := 0; i < 40; i++ {
		series = append(series, constSeries(models.MidBull, days))
	}

	result := Calculate(series, zeroRatios(40), nil, nil, cfg)

	assert.True(t, result.Enhanced)
	assert.LessOrEqual(t, result.CurrentScore, 80.0)
}

func TestCalculate_VolumeRatioClipped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinRatedPerDay = 10
	cfg.VolumeRatioJitter = true
	cfg.Jitter = func() float64 { return 10 }
	days := 12
	var series []models.RatingSeries
	for i := 0; i < 20; i++ {
		series = append(series, constSeries(models.MidBull, days))
	}

	result := Calculate(series, zeroRatios(20), nil, nil, cfg)

	assert.LessOrEqual(t, result.VolumeRatio, 5.0)
	assert.GreaterOrEqual(t, result.VolumeRatio, 0.1)
}

func TestCalculate_HistoryChronologicalAndBounded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinRatedPerDay = 5
	days := 40
	dates := make([]string, days)
	for i := range dates {
		dates[i] = "2026-01-" + itoa(i+1)
	}
	var series []models.RatingSeries
	for i := 0; i < 10; i++ {
		series = append(series, constSeries(models.MidBull, days))
	}

	result := Calculate(series, zeroRatios(10), nil, dates, cfg)

	assert.Len(t, result.History, historyLimit)
	assert.Equal(t, dates[len(dates)-1], result.History[len(result.History)-1].Date)
}
