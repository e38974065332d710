// Package forecast fits an automatically selected ARIMA model to a yearly
// series and projects it forward.
package forecast

import (
	"fmt"
	"math"

	"github.com/sartorproj/goarima/autoarima"
	"github.com/sartorproj/goarima/timeseries"
	"gonum.org/v1/gonum/stat"
)

// minObservations is the shortest series the order search will fit.
const minObservations = 10

// Result holds point forecasts with a 95% confidence band, one entry per
// horizon step.
type Result struct {
	Points []float64
	Lower  []float64
	Upper  []float64
}

// Forecast selects a non-seasonal ARIMA order by AICc, fits it, and forecasts
// horizon steps ahead. The selection is a deterministic search, so identical
// input yields an identical forecast. A series shorter than minObservations
// is an explicit error.
func Forecast(series []float64, horizon int) (Result, error) {
	if horizon <= 0 {
		return Result{}, fmt.Errorf("horizon must be positive, got %d", horizon)
	}
	if len(series) < minObservations {
		return Result{}, fmt.Errorf("series too short to fit: %d observations, need %d",
			len(series), minObservations)
	}

	model, err := autoarima.AutoARIMA(timeseries.New(series), &autoarima.Config{
		Criterion: "aicc",
	})
	if err != nil {
		return Result{}, fmt.Errorf("selecting ARIMA order for %d observations: %w",
			len(series), err)
	}

	points, err := model.Predict(horizon)
	if err != nil {
		return Result{}, fmt.Errorf("forecasting %d steps: %w", horizon, err)
	}

	// Approximate 95% intervals from the residual standard error, widening
	// with the square root of the horizon step.
	residuals := model.Residuals()
	sigma := stat.StdDev(residuals, nil)
	if math.IsNaN(sigma) {
		sigma = 0
	}

	result := Result{
		Points: points,
		Lower:  make([]float64, len(points)),
		Upper:  make([]float64, len(points)),
	}
	for i, p := range points {
		margin := 1.96 * sigma * math.Sqrt(float64(i+1))
		result.Lower[i] = p - margin
		result.Upper[i] = p + margin
	}
	return result, nil
}
