package dataset

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"energytrends/internal/config"
	"energytrends/internal/worldbank"
)

type stubFetcher struct {
	series map[string][]worldbank.Observation
	err    map[string]error
}

func (s stubFetcher) Fetch(_ context.Context, indicator string) ([]worldbank.Observation, error) {
	if err := s.err[indicator]; err != nil {
		return nil, err
	}
	obs, ok := s.series[indicator]
	if !ok {
		return nil, fmt.Errorf("unexpected indicator %s", indicator)
	}
	return obs, nil
}

func value(v float64) *float64 { return &v }

func obs(code, name string, year int, v *float64) worldbank.Observation {
	return worldbank.Observation{CountryCode: code, CountryName: name, Year: year, Value: v}
}

// testFetcher covers the filter and derivation scenarios: a complete USA row,
// a Brazil row without GDP, an aggregate entity, a pre-cutoff year, a row
// missing a required indicator, and a zero GDP.
func testFetcher() stubFetcher {
	return stubFetcher{series: map[string][]worldbank.Observation{
		"EG.FEC.RNEW.ZS": {
			obs("USA", "United States", 2021, value(5.6)),
			obs("USA", "United States", 1989, value(4.0)),
			obs("USA", "United States", 2020, nil),
			obs("BRA", "Brazil", 2021, value(46.2)),
			obs("WLD", "World", 2021, value(18.0)),
			obs("TUR", "Turkiye", 2021, value(16.7)),
		},
		"EG.USE.PCAP.KG.OE": {
			obs("USA", "United States", 2021, value(6446)),
			obs("USA", "United States", 1989, value(7700)),
			obs("USA", "United States", 2020, value(6000)),
			obs("BRA", "Brazil", 2021, value(1400)),
			obs("WLD", "World", 2021, value(1900)),
			obs("TUR", "Turkiye", 2021, value(1700)),
		},
		"SP.POP.TOTL": {
			obs("USA", "United States", 2021, value(331000000)),
			obs("BRA", "Brazil", 2021, value(213000000)),
			obs("WLD", "World", 2021, value(7800000000)),
			// Population-only year: must not survive the non-null filter.
			obs("USA", "United States", 1985, value(237000000)),
		},
		"NY.GDP.PCAP.KD": {
			obs("USA", "United States", 2021, value(65000)),
			obs("WLD", "World", 2021, value(11000)),
			obs("TUR", "Turkiye", 2021, value(0)),
		},
	}}
}

func buildSpec() Spec {
	return Spec{
		Indicators: config.DefaultIndicators,
		Countries:  config.DefaultCountries,
		MinYear:    1990,
	}
}

func TestBuildInvariants(t *testing.T) {
	recs, err := Build(context.Background(), testFetcher(), buildSpec(), zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NotEmpty(t, recs)

	allowed := make(map[string]bool)
	for _, c := range config.DefaultCountries {
		allowed[c] = true
	}
	for _, r := range recs {
		assert.GreaterOrEqual(t, r.Year, 1990)
		assert.True(t, allowed[r.CountryCode], "unexpected entity %s", r.CountryCode)
		assert.NotNil(t, r.RenewableShare)
		assert.NotNil(t, r.EnergyUsePerCapita)
	}

	// BRA, TUR, USA 2021 survive; sorted by (code, year).
	require.Len(t, recs, 3)
	assert.Equal(t, "BRA", recs[0].CountryCode)
	assert.Equal(t, "TUR", recs[1].CountryCode)
	assert.Equal(t, "USA", recs[2].CountryCode)
}

func TestBuildExcludesAggregates(t *testing.T) {
	recs, err := Build(context.Background(), testFetcher(), buildSpec(), zaptest.NewLogger(t))
	require.NoError(t, err)

	for _, r := range recs {
		assert.NotEqual(t, "WLD", r.CountryCode)
		assert.NotEqual(t, "World", r.CountryName)
	}
}

func TestBuildDerivesUSA(t *testing.T) {
	recs, err := Build(context.Background(), testFetcher(), buildSpec(), zaptest.NewLogger(t))
	require.NoError(t, err)

	usa := ForCountry(recs, "USA")
	require.Len(t, usa, 1)
	r := usa[0]
	assert.Equal(t, 2021, r.Year)
	require.NotNil(t, r.TotalEnergyUse)
	assert.Equal(t, 6446.0*331000000, *r.TotalEnergyUse)
	require.NotNil(t, r.EnergyIntensity)
	assert.InDelta(t, 0.0992, *r.EnergyIntensity, 0.0001)
}

func TestBuildNullGDPKeepsTotalEnergyUse(t *testing.T) {
	recs, err := Build(context.Background(), testFetcher(), buildSpec(), zaptest.NewLogger(t))
	require.NoError(t, err)

	bra := ForCountry(recs, "BRA")
	require.Len(t, bra, 1)
	assert.Nil(t, bra[0].EnergyIntensity)
	require.NotNil(t, bra[0].TotalEnergyUse)
	assert.Equal(t, 1400.0*213000000, *bra[0].TotalEnergyUse)
	assert.Nil(t, bra[0].GDPPerCapita)
}

func TestBuildZeroGDPYieldsNullIntensity(t *testing.T) {
	recs, err := Build(context.Background(), testFetcher(), buildSpec(), zaptest.NewLogger(t))
	require.NoError(t, err)

	tur := ForCountry(recs, "TUR")
	require.Len(t, tur, 1)
	require.NotNil(t, tur[0].GDPPerCapita)
	assert.Zero(t, *tur[0].GDPPerCapita)
	assert.Nil(t, tur[0].EnergyIntensity)
}

func TestBuildFailsFastOnFetchError(t *testing.T) {
	fetcher := testFetcher()
	fetcher.err = map[string]error{"SP.POP.TOTL": errors.New("connection reset")}

	_, err := Build(context.Background(), fetcher, buildSpec(), zaptest.NewLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SP.POP.TOTL")
}

func TestDeriveNullPropagation(t *testing.T) {
	recs := []Record{
		{CountryCode: "USA", Year: 2021, EnergyUsePerCapita: value(100)},
		{CountryCode: "BRA", Year: 2021, EnergyUsePerCapita: value(100), Population: value(10), GDPPerCapita: value(50)},
	}
	Derive(recs)

	assert.Nil(t, recs[0].TotalEnergyUse)
	assert.Nil(t, recs[0].EnergyIntensity)
	require.NotNil(t, recs[1].TotalEnergyUse)
	assert.Equal(t, 1000.0, *recs[1].TotalEnergyUse)
	require.NotNil(t, recs[1].EnergyIntensity)
	assert.Equal(t, 2.0, *recs[1].EnergyIntensity)
}

func TestFilterOrderIndependent(t *testing.T) {
	// The filters are independent predicates: a pre-cutoff aggregate row with
	// missing values is dropped exactly once no matter what knocks it out.
	recs := []Record{
		{CountryCode: "WLD", CountryName: "World", Year: 1980},
		{CountryCode: "USA", CountryName: "United States", Year: 2021,
			RenewableShare: value(5), EnergyUsePerCapita: value(6000)},
	}
	out := Filter(recs, buildSpec())
	require.Len(t, out, 1)
	assert.Equal(t, "USA", out[0].CountryCode)
}
