package figures

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"energytrends/internal/dataset"
	"energytrends/internal/forecast"
)

// ForecastFigure fits an auto-selected ARIMA model to the renewable share
// series of one country and renders history, point forecast and the 95% band.
func ForecastFigure(recs []dataset.Record, country string, horizon int, path string) error {
	var years []int
	var values []float64
	for _, r := range dataset.ForCountry(recs, country) {
		if r.RenewableShare != nil {
			years = append(years, r.Year)
			values = append(values, *r.RenewableShare)
		}
	}
	if len(values) == 0 {
		return fmt.Errorf("no renewable share history for %s", country)
	}

	result, err := forecast.Forecast(values, horizon)
	if err != nil {
		return fmt.Errorf("forecasting %s: %w", country, err)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Renewable share forecast for %s (%d years ahead)",
		country, horizon)
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Renewable share (% of final energy consumption)"

	lastYear := years[len(years)-1]

	// Confidence band first so the lines draw on top of it.
	band := make(plotter.XYs, 0, 2*horizon)
	for i := 0; i < horizon; i++ {
		band = append(band, plotter.XY{X: float64(lastYear + 1 + i), Y: result.Upper[i]})
	}
	for i := horizon - 1; i >= 0; i-- {
		band = append(band, plotter.XY{X: float64(lastYear + 1 + i), Y: result.Lower[i]})
	}
	polygon, err := plotter.NewPolygon(band)
	if err != nil {
		return err
	}
	polygon.Color = color.RGBA{R: 255, G: 127, B: 14, A: 50}
	polygon.LineStyle.Width = vg.Length(0)
	p.Add(polygon)

	historical := make(plotter.XYs, len(values))
	for i := range values {
		historical[i] = plotter.XY{X: float64(years[i]), Y: values[i]}
	}
	histLine, err := plotter.NewLine(historical)
	if err != nil {
		return err
	}
	histLine.Color = palette[0]
	histLine.Width = vg.Points(1.5)
	p.Add(histLine)
	p.Legend.Add("Historical", histLine)

	// Anchor the forecast line at the last observation so it joins the history.
	projected := plotter.XYs{{X: float64(lastYear), Y: values[len(values)-1]}}
	for i, v := range result.Points {
		projected = append(projected, plotter.XY{X: float64(lastYear + 1 + i), Y: v})
	}
	forecastLine, err := plotter.NewLine(projected)
	if err != nil {
		return err
	}
	forecastLine.Color = palette[1]
	forecastLine.Width = vg.Points(1.5)
	forecastLine.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	p.Add(forecastLine)
	p.Legend.Add("Forecast", forecastLine)

	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
