package forecast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trendSeries is a rising series with a small deterministic wiggle, in the
// shape of a renewable-share history.
func trendSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 5 + 0.3*float64(i) + 0.2*math.Sin(float64(i))
	}
	return out
}

func TestForecastHorizon(t *testing.T) {
	result, err := Forecast(trendSeries(30), 10)
	require.NoError(t, err)

	require.Len(t, result.Points, 10)
	require.Len(t, result.Lower, 10)
	require.Len(t, result.Upper, 10)

	for i := range result.Points {
		assert.LessOrEqual(t, result.Lower[i], result.Points[i])
		assert.GreaterOrEqual(t, result.Upper[i], result.Points[i])
	}
}

func TestForecastBandWidensWithHorizon(t *testing.T) {
	result, err := Forecast(trendSeries(30), 10)
	require.NoError(t, err)

	firstWidth := result.Upper[0] - result.Lower[0]
	lastWidth := result.Upper[9] - result.Lower[9]
	assert.GreaterOrEqual(t, lastWidth, firstWidth)
}

func TestForecastDeterministic(t *testing.T) {
	first, err := Forecast(trendSeries(30), 5)
	require.NoError(t, err)
	second, err := Forecast(trendSeries(30), 5)
	require.NoError(t, err)

	assert.Equal(t, first.Points, second.Points)
	assert.Equal(t, first.Lower, second.Lower)
	assert.Equal(t, first.Upper, second.Upper)
}

func TestForecastSeriesTooShort(t *testing.T) {
	_, err := Forecast(trendSeries(5), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too short")
}

func TestForecastRejectsBadHorizon(t *testing.T) {
	_, err := Forecast(trendSeries(30), 0)
	require.Error(t, err)
}
