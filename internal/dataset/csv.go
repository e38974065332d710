package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// WriteCSV persists the records to path with the fixed column order, header
// row included, overwriting any previous artifact. Null values are written as
// empty fields.
func WriteCSV(recs []Record, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range recs {
		row := []string{
			r.CountryCode,
			r.CountryName,
			strconv.Itoa(r.Year),
			formatValue(r.RenewableShare),
			formatValue(r.EnergyUsePerCapita),
			formatValue(r.Population),
			formatValue(r.GDPPerCapita),
			formatValue(r.TotalEnergyUse),
			formatValue(r.EnergyIntensity),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing record %s/%d: %w", r.CountryCode, r.Year, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return f.Close()
}

// ReadCSV loads a previously persisted artifact. A missing or malformed file
// is an error; generators must not run against a partial table.
func ReadCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}
	if len(header) != len(Columns) {
		return nil, fmt.Errorf("%s: expected %d columns, found %d", path, len(Columns), len(header))
	}
	for i, name := range Columns {
		if header[i] != name {
			return nil, fmt.Errorf("%s: column %d is %q, expected %q", path, i, header[i], name)
		}
	}

	var recs []Record
	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		year, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: bad year %q", path, line, row[2])
		}
		rec := Record{
			CountryCode: row[0],
			CountryName: row[1],
			Year:        year,
		}
		fields := []**float64{
			&rec.RenewableShare,
			&rec.EnergyUsePerCapita,
			&rec.Population,
			&rec.GDPPerCapita,
			&rec.TotalEnergyUse,
			&rec.EnergyIntensity,
		}
		for i, field := range fields {
			v, err := parseValue(row[3+i])
			if err != nil {
				return nil, fmt.Errorf("%s line %d column %s: %w", path, line, Columns[3+i], err)
			}
			*field = v
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func formatValue(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'g', -1, 64)
}

func parseValue(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
