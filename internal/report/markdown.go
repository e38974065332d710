package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"energytrends/internal/dataset"
)

// WriteMarkdown writes a short markdown summary of the dataset at path.
func WriteMarkdown(recs []dataset.Record, path string) error {
	if len(recs) == 0 {
		return fmt.Errorf("no records to report")
	}

	summaries := Summarize(recs)
	latest, _ := dataset.LatestYear(recs)

	var b strings.Builder
	b.WriteString("# Energy indicators summary\n\n")
	fmt.Fprintf(&b, "- **Records**: %d\n", len(recs))
	fmt.Fprintf(&b, "- **Countries**: %d\n", len(summaries))
	fmt.Fprintf(&b, "- **Latest year**: %d\n\n", latest)

	b.WriteString("| Country | Years | Latest renewable share (%) | Change since first year (pp) | Latest energy use (kg oe/capita) |\n")
	b.WriteString("|---------|-------|----------------------------|------------------------------|----------------------------------|\n")
	for _, s := range summaries {
		fmt.Fprintf(&b, "| %s | %d-%d | %.1f | %+.1f | %.0f |\n",
			s.Code, s.FirstYear, s.LastYear,
			s.LastRenewableShare, s.RenewableChange, s.LastEnergyUse)
	}

	fmt.Fprintf(&b, "\n---\n*Generated %s*\n", time.Now().Format("2 January 2006"))

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing summary %s: %w", path, err)
	}
	return nil
}
