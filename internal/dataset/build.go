package dataset

import (
	"context"
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"go.uber.org/zap"

	"energytrends/internal/config"
	"energytrends/internal/worldbank"
)

// Spec is the explicit configuration for one dataset build.
type Spec struct {
	Indicators []config.Indicator
	Countries  []string
	MinYear    int
}

// Build fetches every indicator series, outer-joins them on
// (country_code, country, year), filters the rows and computes the derived
// columns. Any fetch failure fails the whole build; a partial merge is never
// produced.
func Build(ctx context.Context, fetcher worldbank.Fetcher, spec Spec, logger *zap.Logger) ([]Record, error) {
	if len(spec.Indicators) == 0 {
		return nil, fmt.Errorf("no indicators configured")
	}

	frames := make([]dataframe.DataFrame, 0, len(spec.Indicators))
	for _, ind := range spec.Indicators {
		obs, err := fetcher.Fetch(ctx, ind.Code)
		if err != nil {
			return nil, fmt.Errorf("fetching indicator %s: %w", ind.Code, err)
		}
		frames = append(frames, frame(obs, ind.Column))
	}

	merged := frames[0]
	for _, f := range frames[1:] {
		merged = merged.OuterJoin(f, "country_code", "country", "year")
		if merged.Err != nil {
			return nil, fmt.Errorf("joining indicator series: %w", merged.Err)
		}
	}

	recs, err := fromDataFrame(merged, spec.Indicators)
	if err != nil {
		return nil, err
	}
	recs = Filter(recs, spec)
	Derive(recs)
	SortRecords(recs)

	logger.Info("dataset built",
		zap.Int("indicators", len(spec.Indicators)),
		zap.Int("records", len(recs)))
	return recs, nil
}

// frame converts one fetched series into a dataframe with the join keys and a
// single value column. Missing values become NaN, gota's missing marker.
func frame(obs []worldbank.Observation, column string) dataframe.DataFrame {
	codes := make([]string, len(obs))
	names := make([]string, len(obs))
	years := make([]int, len(obs))
	values := make([]float64, len(obs))
	for i, o := range obs {
		codes[i] = o.CountryCode
		names[i] = o.CountryName
		years[i] = o.Year
		if o.Value != nil {
			values[i] = *o.Value
		} else {
			values[i] = math.NaN()
		}
	}
	return dataframe.New(
		series.New(codes, series.String, "country_code"),
		series.New(names, series.String, "country"),
		series.New(years, series.Int, "year"),
		series.New(values, series.Float, column),
	)
}

func fromDataFrame(df dataframe.DataFrame, indicators []config.Indicator) ([]Record, error) {
	codes := df.Col("country_code").Records()
	names := df.Col("country").Records()
	years, err := df.Col("year").Int()
	if err != nil {
		return nil, fmt.Errorf("reading year column: %w", err)
	}

	recs := make([]Record, df.Nrow())
	for i := range recs {
		recs[i] = Record{
			CountryCode: codes[i],
			CountryName: names[i],
			Year:        years[i],
		}
	}

	for _, ind := range indicators {
		values := df.Col(ind.Column).Float()
		for i, v := range values {
			p := nullable(v)
			switch ind.Column {
			case "renewable_share":
				recs[i].RenewableShare = p
			case "energy_use_per_capita":
				recs[i].EnergyUsePerCapita = p
			case "population":
				recs[i].Population = p
			case "gdp_per_capita":
				recs[i].GDPPerCapita = p
			default:
				return nil, fmt.Errorf("indicator %s maps to unknown column %q", ind.Code, ind.Column)
			}
		}
	}
	return recs, nil
}

func nullable(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

// Filter applies the row filters: year cutoff, real 3-letter country codes
// (drops the source's regional and income-group aggregates), the configured
// country allow-list, and presence of both required indicator values.
func Filter(recs []Record, spec Spec) []Record {
	allowed := make(map[string]bool, len(spec.Countries))
	for _, c := range spec.Countries {
		allowed[c] = true
	}

	out := recs[:0:0]
	for _, r := range recs {
		if r.Year < spec.MinYear {
			continue
		}
		if len(r.CountryCode) != 3 {
			continue
		}
		if !allowed[r.CountryCode] {
			continue
		}
		if r.RenewableShare == nil || r.EnergyUsePerCapita == nil {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Derive fills the two computed columns. Both propagate null rather than
// failing: total energy use needs population, energy intensity needs a
// non-zero GDP per capita.
func Derive(recs []Record) {
	for i := range recs {
		r := &recs[i]
		r.TotalEnergyUse = nil
		if r.EnergyUsePerCapita != nil && r.Population != nil {
			v := *r.EnergyUsePerCapita * *r.Population
			r.TotalEnergyUse = &v
		}
		r.EnergyIntensity = nil
		if r.EnergyUsePerCapita != nil && r.GDPPerCapita != nil && *r.GDPPerCapita != 0 {
			v := *r.EnergyUsePerCapita / *r.GDPPerCapita
			r.EnergyIntensity = &v
		}
	}
}
