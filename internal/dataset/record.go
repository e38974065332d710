// Package dataset builds the tidy per-country-per-year table the rest of the
// pipeline consumes: it joins the fetched indicator series, applies the row
// filters, computes the derived metrics and persists the result as CSV.
package dataset

import "sort"

// Record is one country-year row of the processed dataset. Pointer fields are
// nullable: nil means the source reported no value.
type Record struct {
	CountryCode        string
	CountryName        string
	Year               int
	RenewableShare     *float64
	EnergyUsePerCapita *float64
	Population         *float64
	GDPPerCapita       *float64
	TotalEnergyUse     *float64
	EnergyIntensity    *float64
}

// Columns is the fixed schema of the persisted artifact. Every consumer of the
// CSV depends on this order.
var Columns = []string{
	"country_code",
	"country",
	"year",
	"renewable_share",
	"energy_use_per_capita",
	"population",
	"gdp_per_capita",
	"total_energy_use",
	"energy_intensity",
}

// SortRecords orders records by (country code, year) so repeated runs persist
// byte-identical artifacts.
func SortRecords(recs []Record) {
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].CountryCode != recs[j].CountryCode {
			return recs[i].CountryCode < recs[j].CountryCode
		}
		return recs[i].Year < recs[j].Year
	})
}

// LatestYear returns the most recent year present in recs, or false when recs
// is empty.
func LatestYear(recs []Record) (int, bool) {
	if len(recs) == 0 {
		return 0, false
	}
	latest := recs[0].Year
	for _, r := range recs[1:] {
		if r.Year > latest {
			latest = r.Year
		}
	}
	return latest, true
}

// ForYear returns the subset of recs for one year.
func ForYear(recs []Record, year int) []Record {
	var out []Record
	for _, r := range recs {
		if r.Year == year {
			out = append(out, r)
		}
	}
	return out
}

// ForCountry returns the subset of recs for one country code, ordered by year.
func ForCountry(recs []Record, code string) []Record {
	var out []Record
	for _, r := range recs {
		if r.CountryCode == code {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}
