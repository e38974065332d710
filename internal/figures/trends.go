package figures

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"energytrends/internal/dataset"
)

// LineTrends renders one line per country of the selected value over time.
func LineTrends(recs []dataset.Record, value func(dataset.Record) *float64, title, ylabel, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Year"
	p.Y.Label.Text = ylabel

	plotted := 0
	for i, code := range countryCodes(recs) {
		var pts plotter.XYs
		for _, r := range dataset.ForCountry(recs, code) {
			if v := value(r); v != nil {
				pts = append(pts, plotter.XY{X: float64(r.Year), Y: *v})
			}
		}
		if len(pts) == 0 {
			continue
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("line for %s: %w", code, err)
		}
		line.Color = palette[i%len(palette)]
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(code, line)
		plotted++
	}
	if plotted == 0 {
		return fmt.Errorf("no values to plot")
	}

	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	p.Legend.TextStyle.Font.Size = vg.Points(8)

	if err := p.Save(12*vg.Inch, 7*vg.Inch, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
