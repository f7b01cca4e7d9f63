package rtsi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinregress_PerfectLine(t *testing.T) {
	y := []float64{0, 1, 2, 3, 4}
	slope, intercept, rSquared, pValue := linregress(y)

	assert.InDelta(t, 1.0, slope, 1e-9)
	assert.InDelta(t, 0.0, intercept, 1e-9)
	assert.InDelta(t, 1.0, rSquared, 1e-9)
	assert.Less(t, pValue, 0.01)
}

func TestLinregress_FlatLine(t *testing.T) {
	y := []float64{3, 3, 3, 3, 3}
	slope, _, rSquared, pValue := linregress(y)

	assert.Equal(t, 0.0, slope)
	assert.Equal(t, 0.0, rSquared)
	assert.Equal(t, 1.0, pValue)
}

func TestLinregress_TooFewPoints(t *testing.T) {
	slope, _, rSquared, pValue := linregress([]float64{5})
	assert.Equal(t, 0.0, slope)
	assert.Equal(t, 0.0, rSquared)
	assert.Equal(t, 1.0, pValue)
}
