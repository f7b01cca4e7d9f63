package irsi

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

// S5 — industry outperformance: industry mean ordinal 5.0 (small-bull),
// whole-market mean 3.5 across 20 days. Expect irsi ~= 100*(5-3.5)/3.5 ~= 42.86.
func TestCalculate_IndustryOutperformance(t *testing.T) {
	days := 20
	industry := []models.RatingSeries{
		constSeries(models.SmallBull, days), // ordinal 5
		constSeries(models.SmallBull, days), // ordinal 5
	}
	// Whole market (includes industry members) averages to 3.5:
	// (5+5+2+2)/4 = 3.5.
	market := append(append([]models.RatingSeries{}, industry...),
		constSeries(models.SmallBear, days), // ordinal 2
		constSeries(models.SmallBear, days), // ordinal 2
	)

	result := Calculate(industry, market, 0, DefaultConfig())

	assert.InDelta(t, 42.86, result.Score, 0.5)
	assert.Equal(t, models.StatusStrongOutperform, result.Status)
}

func TestCalculate_NoDeviationIsNeutral(t *testing.T) {
	days := 10
	industry := []models.RatingSeries{constSeries(models.MidBull, days), constSeries(models.MidBull, days)}
	market := industry

	result := Calculate(industry, market, 0, DefaultConfig())

	assert.InDelta(t, 0, result.Score, 1e-9)
	assert.Equal(t, models.StatusNeutral, result.Status)
}

func TestCalculate_TooFewMembers(t *testing.T) {
	industry := []models.RatingSeries{constSeries(models.MidBull, 10)}
	market := industry

	result := Calculate(industry, market, 0, DefaultConfig())

	assert.Equal(t, models.StatusInsufficientData, result.Status)
	assert.Equal(t, 0.0, result.Score)
}

func TestCalculate_ScoreClippedToRange(t *testing.T) {
	days := 5
	industry := []models.RatingSeries{constSeries(models.StrongBull, days), constSeries(models.StrongBull, days)}
	market := []models.RatingSeries{constSeries(models.StrongBear, days), constSeries(models.StrongBull, days)}

	result := Calculate(industry, market, 0, DefaultConfig())

	assert.LessOrEqual(t, result.Score, 100.0)
	assert.GreaterOrEqual(t, result.Score, -100.0)
}
