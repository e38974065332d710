// Package report writes the Excel workbook and markdown summary that
// accompany the persisted dataset.
package report

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"energytrends/internal/dataset"
)

// CountrySummary aggregates one country's renewable share and energy use
// history.
type CountrySummary struct {
	Code               string
	Name               string
	FirstYear          int
	LastYear           int
	MeanRenewableShare float64
	LastRenewableShare float64
	RenewableChange    float64
	LastEnergyUse      float64
}

// Summarize builds one CountrySummary per country, ordered by code. Records
// without a renewable share never reach the dataset, so each country has at
// least one usable observation.
func Summarize(recs []dataset.Record) []CountrySummary {
	byCode := make(map[string][]dataset.Record)
	for _, r := range recs {
		byCode[r.CountryCode] = append(byCode[r.CountryCode], r)
	}

	var summaries []CountrySummary
	for code, rows := range byCode {
		sort.Slice(rows, func(i, j int) bool { return rows[i].Year < rows[j].Year })

		var shares []float64
		for _, r := range rows {
			shares = append(shares, *r.RenewableShare)
		}
		first, last := rows[0], rows[len(rows)-1]
		summary := CountrySummary{
			Code:               code,
			Name:               last.CountryName,
			FirstYear:          first.Year,
			LastYear:           last.Year,
			MeanRenewableShare: stat.Mean(shares, nil),
			LastRenewableShare: *last.RenewableShare,
			RenewableChange:    *last.RenewableShare - *first.RenewableShare,
		}
		if last.EnergyUsePerCapita != nil {
			summary.LastEnergyUse = *last.EnergyUsePerCapita
		}
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Code < summaries[j].Code })
	return summaries
}
