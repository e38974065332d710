package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"energytrends/internal/dataset"
)

const (
	sheetDataset = "Dataset"
	sheetLatest  = "Latest_Year"
	sheetSummary = "Country_Summary"
)

// WriteWorkbook writes the dataset, its latest-year slice and the per-country
// summary as a three-sheet Excel workbook at path.
func WriteWorkbook(recs []dataset.Record, path string) error {
	if len(recs) == 0 {
		return fmt.Errorf("no records to report")
	}

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetDataset)

	if err := writeRecordSheet(f, sheetDataset, recs); err != nil {
		return err
	}

	latest, _ := dataset.LatestYear(recs)
	if _, err := f.NewSheet(sheetLatest); err != nil {
		return err
	}
	if err := writeRecordSheet(f, sheetLatest, dataset.ForYear(recs, latest)); err != nil {
		return err
	}

	if _, err := f.NewSheet(sheetSummary); err != nil {
		return err
	}
	if err := writeSummarySheet(f, Summarize(recs)); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

func writeRecordSheet(f *excelize.File, sheet string, recs []dataset.Record) error {
	for i, header := range dataset.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	for i, r := range recs {
		row := i + 2
		values := []any{
			r.CountryCode,
			r.CountryName,
			r.Year,
			cellValue(r.RenewableShare),
			cellValue(r.EnergyUsePerCapita),
			cellValue(r.Population),
			cellValue(r.GDPPerCapita),
			cellValue(r.TotalEnergyUse),
			cellValue(r.EnergyIntensity),
		}
		for col, v := range values {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, summaries []CountrySummary) error {
	headers := []string{
		"country_code", "country", "first_year", "last_year",
		"mean_renewable_share", "latest_renewable_share",
		"renewable_share_change", "latest_energy_use_per_capita",
	}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetSummary, cell, header); err != nil {
			return err
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetSummary, col, col, 22); err != nil {
			return err
		}
	}

	for i, s := range summaries {
		row := i + 2
		values := []any{
			s.Code, s.Name, s.FirstYear, s.LastYear,
			s.MeanRenewableShare, s.LastRenewableShare,
			s.RenewableChange, s.LastEnergyUse,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetSummary, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func cellValue(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
