package interpolate

import (
	"testing"

	"github.com/marketpulse/ratingengine/internal/models"
	"github.com/stretchr/testify/assert"
)

func genSeries(ratings ...interface{}) models.RatingSeries {
	out := make(models.RatingSeries, len(ratings))
	for i, r := range ratings {
		switch v := r.(type) {
		case models.Rating:
			out[i] = v
		case nil:
			out[i] = models.Missing
		}
	}
	return out
}

func TestFill_LeadingGap(t *testing.T) {
	series := genSeries(nil, nil, models.SmallBull, models.MidBull, models.StrongBull)
	result := Fill(series)

	assert.False(t, result.AllMissing)
	want := genSeries(models.SmallBull, models.SmallBull, models.SmallBull, models.MidBull, models.StrongBull)
	assert.Equal(t, want, result.Series)
}

func TestFill_MidSeriesGap(t *testing.T) {
	series := genSeries(models.MidBull, nil, nil, models.MidBull, models.SmallBull)
	result := Fill(series)

	want := genSeries(models.MidBull, models.MidBull, models.MidBull, models.MidBull, models.SmallBull)
	assert.Equal(t, want, result.Series)
}

func TestFill_AllMissing(t *testing.T) {
	series := genSeries(nil, nil, nil)
	result := Fill(series)

	assert.True(t, result.AllMissing)
	assert.Equal(t, series, result.Series)
}

func TestFill_NoMissing(t *testing.T) {
	series := genSeries(models.MicroBull, models.SmallBull, models.MidBull)
	result := Fill(series)

	assert.Equal(t, series, result.Series)
	assert.Zero(t, result.InterpolationRatio)
}

func TestFill_Idempotent(t *testing.T) {
	series := genSeries(nil, models.MidBull, nil, models.SmallBull)
	once := Fill(series)
	twice := Fill(once.Series)

	assert.Equal(t, once.Series, twice.Series)
}

func TestFill_NoMissingCellAtOrAfterFirstValid(t *testing.T) {
	series := genSeries(nil, nil, models.MicroBear, nil, models.SmallBull)
	result := Fill(series)

	for i := 2; i < len(result.Series); i++ {
		assert.NotEqual(t, models.Missing, result.Series[i])
	}
}

func TestQualityWarnings(t *testing.T) {
	assert.Empty(t, QualityWarnings(0.1))
	assert.Len(t, QualityWarnings(0.35), 1)
	assert.Contains(t, QualityWarnings(0.35)[0], "high_interpolation")
	assert.Contains(t, QualityWarnings(0.6)[0], "severe_interpolation")
}
