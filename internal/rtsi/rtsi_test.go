package rtsi

import (
	"testing"

	"github.com/marketpulse/ratingengine/internal/interpolate"
	"github.com/marketpulse/ratingengine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func genSeries(ratings ...models.Rating) models.RatingSeries {
	return models.RatingSeries(ratings)
}

// S1 — monotone uptrend.
func TestCalculate_MonotoneUptrend(t *testing.T) {
	series := genSeries(
		models.SmallBear, models.MicroBear, models.MicroBear, models.MicroBull, models.MicroBull,
		models.SmallBull, models.SmallBull, models.MidBull, models.MidBull, models.StrongBull,
	)
	result := Calculate(series, 0, DefaultConfig())

	assert.GreaterOrEqual(t, result.Score, 60.0)
	assert.Greater(t, result.Slope, 0.0)
	assert.GreaterOrEqual(t, result.RSquared, 0.9)
	assert.GreaterOrEqual(t, result.Confidence, 0.95)
	assert.Contains(t, []models.TrendLabel{models.TrendStrongBull, models.TrendModerateBull}, result.Trend)
}

// S2 — flat series.
func TestCalculate_FlatSeries(t *testing.T) {
	series := make(models.RatingSeries, 10)
	for i := range series {
		series[i] = models.MicroBull
	}
	result := Calculate(series, 0, DefaultConfig())

	assert.Equal(t, 0.0, result.Slope)
	assert.Equal(t, 0.0, result.Score)
	assert.Contains(t, []models.TrendLabel{models.TrendUnclear, models.TrendSideways}, result.Trend)
}

// S3 — mid-series gap, interpolated before RTSI runs.
func TestCalculate_MidSeriesGap(t *testing.T) {
	raw := genSeries(models.MidBull, models.Missing, models.Missing, models.MidBull, models.SmallBull)
	filled := interpolate.Fill(raw)
	require.False(t, filled.AllMissing)

	result := Calculate(filled.Series, filled.InterpolationRatio, DefaultConfig())
	assert.LessOrEqual(t, result.Slope, 0.0)
}

// S4 — leading gap, interpolated before RTSI runs.
func TestCalculate_LeadingGap(t *testing.T) {
	raw := genSeries(models.Missing, models.Missing, models.SmallBull, models.MidBull, models.StrongBull)
	filled := interpolate.Fill(raw)
	require.False(t, filled.AllMissing)

	want := genSeries(models.SmallBull, models.SmallBull, models.SmallBull, models.MidBull, models.StrongBull)
	assert.Equal(t, want, filled.Series)
}

func TestCalculate_InsufficientData(t *testing.T) {
	series := genSeries(models.MidBull, models.Missing)
	result := Calculate(series, 0, DefaultConfig())

	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, models.TrendInsufficient, result.Trend)
	assert.Equal(t, 1, result.SampleSize)
}

func TestCalculate_SignificanceGate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PThreshold = 0 // nothing can be significant
	series := genSeries(models.StrongBear, models.MicroBear, models.MicroBull, models.StrongBull)
	result := Calculate(series, 0, cfg)

	assert.Equal(t, 0.0, result.Confidence)
}

func TestCalculate_EnhancedStaysInBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enhanced = true
	series := genSeries(
		models.SmallBear, models.MicroBear, models.MicroBear, models.MicroBull, models.MicroBull,
		models.SmallBull, models.SmallBull, models.MidBull, models.MidBull, models.StrongBull,
	)
	result := Calculate(series, 0.1, cfg)

	assert.True(t, result.Enhanced)
	assert.GreaterOrEqual(t, result.Score, 0.0)
	assert.LessOrEqual(t, result.Score, 100.0)
}
