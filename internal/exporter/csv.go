package exporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"salescli/pkg/contracts/domain"
)

// utf8BOM makes Excel open CSV exports with the right encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVOptions configures CSV serialization.
type CSVOptions struct {
	// BOMPrefix prepends a UTF-8 byte-order mark for Excel.
	BOMPrefix bool
}

// WriteHistoricalCSV streams the long-format records as CSV.
func WriteHistoricalCSV(w io.Writer, records []domain.SalesRecord, opts CSVOptions) error {
	if opts.BOMPrefix {
		if _, err := w.Write(utf8BOM); err != nil {
			return err
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Area", "State", "Fiscal Year", "Month", "Date", "Sales", "Source Sheet"}); err != nil {
		return err
	}
	for _, r := range records {
		date := ""
		if r.HasDate() {
			date = r.Date.Format(dateLayout)
		}
		row := []string{r.Area, r.State, r.FiscalYear, r.MonthName, date, formatFloat(r.Sales), r.SourceSheet}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteForecastCSV streams the flat per-month forecasts as CSV.
func WriteForecastCSV(w io.Writer, rows []domain.ForecastRow, opts CSVOptions) error {
	if opts.BOMPrefix {
		if _, err := w.Write(utf8BOM); err != nil {
			return err
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Area", "Month", "Forecast"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Area, r.Date.Format(dateLayout), formatFloat(r.Forecast)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// formatFloat renders a value with exactly 2 decimal places so 13.4
// appears as 13.40 in spreadsheets.
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}
