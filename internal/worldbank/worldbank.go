// Package worldbank fetches indicator time series from the World Bank v2 API.
package worldbank

import "context"

// Observation is a single entity/year data point of one indicator series.
// Value is nil when the source reports no data for that year.
type Observation struct {
	CountryCode string
	CountryName string
	Year        int
	Value       *float64
}

// Fetcher retrieves the complete series for one indicator code, across all
// reporting entities and years. Implementations must not truncate paged results.
type Fetcher interface {
	Fetch(ctx context.Context, indicator string) ([]Observation, error)
}
