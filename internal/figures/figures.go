// Package figures renders the descriptive charts from the persisted dataset.
package figures

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"energytrends/internal/dataset"
)

// Params configures one figure-generation run.
type Params struct {
	Dir             string
	Suffix          string
	ClusterK        int
	ClusterSeed     int64
	ForecastCountry string
	ForecastHorizon int
}

// palette holds the line/marker colors, reused modulo its length.
var palette = []color.RGBA{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
	{R: 214, G: 39, B: 40, A: 255},
	{R: 148, G: 103, B: 189, A: 255},
	{R: 140, G: 86, B: 75, A: 255},
	{R: 227, G: 119, B: 194, A: 255},
	{R: 127, G: 127, B: 127, A: 255},
	{R: 188, G: 189, B: 34, A: 255},
	{R: 23, G: 190, B: 207, A: 255},
}

// Render writes every figure into params.Dir. Each figure is attempted
// independently: a failure (e.g. a slice too small to cluster) aborts only
// that figure, and all failures are reported together.
func Render(recs []dataset.Record, params Params, logger *zap.Logger) error {
	if err := os.MkdirAll(params.Dir, 0o755); err != nil {
		return fmt.Errorf("creating figures directory: %w", err)
	}
	latest, ok := dataset.LatestYear(recs)
	if !ok {
		return fmt.Errorf("dataset is empty")
	}
	latestSlice := dataset.ForYear(recs, latest)

	var errs []error
	run := func(name string, fn func(path string) error) {
		path := params.path(name)
		if err := fn(path); err != nil {
			logger.Error("figure failed", zap.String("figure", name), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			return
		}
		logger.Info("figure written", zap.String("path", path))
	}

	run("renewable_share_trends", func(path string) error {
		return LineTrends(recs, func(r dataset.Record) *float64 { return r.RenewableShare },
			"Renewable energy share over time",
			"Renewable share (% of final energy consumption)", path)
	})
	run("energy_use_per_capita_trends", func(path string) error {
		return LineTrends(recs, func(r dataset.Record) *float64 { return r.EnergyUsePerCapita },
			"Energy use per capita over time",
			"Energy use per capita (kg of oil equivalent)", path)
	})
	run("renewable_vs_energyuse_scatter", func(path string) error {
		return LatestScatter(latestSlice, latest, path)
	})
	run("kmeans_clusters", func(path string) error {
		return ClusterScatter(latestSlice, latest, params.ClusterK, params.ClusterSeed, path)
	})
	run(strings.ToLower(params.ForecastCountry)+"_renewable_share_forecast", func(path string) error {
		return ForecastFigure(recs, params.ForecastCountry, params.ForecastHorizon, path)
	})

	return errors.Join(errs...)
}

func (p Params) path(name string) string {
	return filepath.Join(p.Dir, name+p.Suffix+".png")
}

// countryCodes returns the sorted distinct country codes in recs.
func countryCodes(recs []dataset.Record) []string {
	seen := make(map[string]bool)
	var codes []string
	for _, r := range recs {
		if !seen[r.CountryCode] {
			seen[r.CountryCode] = true
			codes = append(codes, r.CountryCode)
		}
	}
	sort.Strings(codes)
	return codes
}
