package exporter

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"salescli/pkg/contracts/domain"
)

// Sheet names of the downloadable report workbook.
const (
	SheetTargets    = "Forecast Target For Areas"
	SheetSummary    = "Summary"
	SheetForecast   = "Area_Forecast"
	SheetHistorical = "Historical_Long"
)

const dateLayout = "2006-01-02"

// WriteXLSX serializes the report into a four-sheet workbook.
func WriteXLSX(report domain.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), SheetTargets)
	if err := writeTargets(f, report.Targets); err != nil {
		return nil, fmt.Errorf("write %s: %w", SheetTargets, err)
	}
	if err := writeSummary(f, report.Summary); err != nil {
		return nil, fmt.Errorf("write %s: %w", SheetSummary, err)
	}
	if err := writeForecasts(f, report.Forecasts); err != nil {
		return nil, fmt.Errorf("write %s: %w", SheetForecast, err)
	}
	if err := writeHistorical(f, report.Historical); err != nil {
		return nil, fmt.Errorf("write %s: %w", SheetHistorical, err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// writeTargets lays areas down the rows and target months across the
// columns. Groups can start at different months, so the column set is
// the ordered union of every group's headers.
func writeTargets(f *excelize.File, targets []domain.TargetRow) error {
	var headers []string
	seen := make(map[string]int)
	for _, row := range targets {
		for _, col := range row.Columns {
			if _, ok := seen[col.Header]; !ok {
				seen[col.Header] = len(headers)
				headers = append(headers, col.Header)
			}
		}
	}

	head := append([]interface{}{"Area"}, toInterfaces(headers)...)
	if err := setRow(f, SheetTargets, 1, head); err != nil {
		return err
	}

	for i, row := range targets {
		cells := make([]interface{}, len(headers)+1)
		cells[0] = row.Area
		for _, col := range row.Columns {
			cells[seen[col.Header]+1] = col.Target
		}
		if err := setRow(f, SheetTargets, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(f *excelize.File, rows []domain.SummaryRow) error {
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return err
	}
	if err := setRow(f, SheetSummary, 1, []interface{}{"Area", "Forecast Total"}); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, SheetSummary, i+2, []interface{}{row.Area, row.ForecastTotal}); err != nil {
			return err
		}
	}
	return nil
}

func writeForecasts(f *excelize.File, rows []domain.ForecastRow) error {
	if _, err := f.NewSheet(SheetForecast); err != nil {
		return err
	}
	if err := setRow(f, SheetForecast, 1, []interface{}{"Area", "Month", "Forecast"}); err != nil {
		return err
	}
	for i, row := range rows {
		cells := []interface{}{row.Area, row.Date.Format(dateLayout), row.Forecast}
		if err := setRow(f, SheetForecast, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func writeHistorical(f *excelize.File, records []domain.SalesRecord) error {
	if _, err := f.NewSheet(SheetHistorical); err != nil {
		return err
	}
	head := []interface{}{"Area", "State", "Fiscal Year", "Month", "Date", "Sales", "Source Sheet"}
	if err := setRow(f, SheetHistorical, 1, head); err != nil {
		return err
	}
	for i, r := range records {
		date := ""
		if r.HasDate() {
			date = r.Date.Format(dateLayout)
		}
		cells := []interface{}{r.Area, r.State, r.FiscalYear, r.MonthName, date, r.Sales, r.SourceSheet}
		if err := setRow(f, SheetHistorical, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &cells)
}

func toInterfaces(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
