package figures

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"energytrends/internal/cluster"
	"energytrends/internal/dataset"
)

// LatestScatter renders energy use per capita against renewable share for the
// latest-year slice, one labeled point per country.
func LatestScatter(slice []dataset.Record, year int, path string) error {
	points, labels := scatterPoints(slice)
	if len(points) == 0 {
		return fmt.Errorf("no complete observations for %d", year)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Renewable share vs. energy use per capita (%d)", year)
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Energy use per capita (kg of oil equivalent)"
	p.Y.Label.Text = "Renewable share (% of final energy consumption)"

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Color = palette[0]
	scatter.GlyphStyle.Radius = vg.Points(5)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(scatter)

	labelPoints, err := plotter.NewLabels(plotter.XYLabels{XYs: points, Labels: labels})
	if err != nil {
		return err
	}
	p.Add(labelPoints)
	p.Add(plotter.NewGrid())

	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// ClusterScatter standardizes the latest-year slice, partitions it into k
// clusters with a fixed seed, and renders the scatter colored by cluster.
func ClusterScatter(slice []dataset.Record, year, k int, seed int64, path string) error {
	points, labels := scatterPoints(slice)
	if len(points) == 0 {
		return fmt.Errorf("no complete observations for %d", year)
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, pt := range points {
		xs[i], ys[i] = pt.X, pt.Y
	}
	xn := cluster.Standardize(xs)
	yn := cluster.Standardize(ys)
	features := make([]cluster.Point, len(points))
	for i := range features {
		features[i] = cluster.Point{xn[i], yn[i]}
	}

	assignments, err := cluster.Partition(features, k, seed)
	if err != nil {
		return fmt.Errorf("clustering %d slice: %w", year, err)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("K-means clustering (%d clusters) on the %d slice", k, year)
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Energy use per capita (kg of oil equivalent)"
	p.Y.Label.Text = "Renewable share (% of final energy consumption)"

	for c := 0; c < k; c++ {
		var pts plotter.XYs
		for i, a := range assignments {
			if a == c {
				pts = append(pts, points[i])
			}
		}
		if len(pts) == 0 {
			continue
		}
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		scatter.GlyphStyle.Color = palette[c%len(palette)]
		scatter.GlyphStyle.Radius = vg.Points(6)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(scatter)
		p.Legend.Add(fmt.Sprintf("Cluster %d", c+1), scatter)
	}

	labelPoints, err := plotter.NewLabels(plotter.XYLabels{XYs: points, Labels: labels})
	if err != nil {
		return err
	}
	for i := range labelPoints.TextStyle {
		labelPoints.TextStyle[i].Color = color.RGBA{R: 60, G: 60, B: 60, A: 255}
	}
	p.Add(labelPoints)
	p.Add(plotter.NewGrid())

	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// scatterPoints extracts the (energy use, renewable share) pairs and country
// code labels from a year slice, skipping incomplete rows.
func scatterPoints(slice []dataset.Record) (plotter.XYs, []string) {
	var points plotter.XYs
	var labels []string
	for _, r := range slice {
		if r.EnergyUsePerCapita == nil || r.RenewableShare == nil {
			continue
		}
		points = append(points, plotter.XY{X: *r.EnergyUsePerCapita, Y: *r.RenewableShare})
		labels = append(labels, r.CountryCode)
	}
	return points, labels
}
