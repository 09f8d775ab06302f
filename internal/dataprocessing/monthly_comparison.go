package dataprocessing

import (
	"context"
	"log/slog"
	"strings"

	"salescli/internal/fiscal"
	"salescli/pkg/contracts/domain"
)

// monthlyComparisonHeaderRow is where the month headers sit on every
// known "MONTHLY COMPARISON" sheet.
const monthlyComparisonHeaderRow = 8

// areaSectionMarkers are the block headings that change the current-area
// cursor while scanning a monthly-comparison sheet top to bottom.
// Ordered most-specific first so "MSD INSIDE KERALA" is not swallowed by
// the bare "KERALA" marker.
var areaSectionMarkers = []string{
	"MSD INSIDE KERALA", "MSD OUTSIDE KERALA", "OTHER STATES",
	"TAMIL NADU", "KARNATAKA", "KERALA",
}

// stateMarkers are the section markers that double as state names.
var stateMarkers = map[string]struct{}{
	"KERALA": {}, "KARNATAKA": {}, "TAMIL NADU": {},
}

// MonthlyComparisonParser handles sheets laid out as stacked area
// blocks, each block holding one row per fiscal year with twelve month
// columns.
type MonthlyComparisonParser struct {
	logger *slog.Logger
}

// NewMonthlyComparisonParser returns the monthly-comparison archetype parser.
func NewMonthlyComparisonParser(logger *slog.Logger) *MonthlyComparisonParser {
	return &MonthlyComparisonParser{logger: logger.With(slog.String("parser", "monthly_comparison"))}
}

// Name implements SheetParser.
func (p *MonthlyComparisonParser) Name() string { return "monthly_comparison" }

// Matches implements SheetParser.
func (p *MonthlyComparisonParser) Matches(sheetName string) bool {
	return sheetNameContains(sheetName, "MONTHLY COMPARISON")
}

// nextArea is the fold step for the area cursor: a row whose first cell
// mentions a section marker moves the cursor, every other row keeps it.
func nextArea(current, firstCell string) string {
	upper := strings.ToUpper(strings.TrimSpace(firstCell))
	for _, marker := range areaSectionMarkers {
		if strings.Contains(upper, marker) {
			return marker
		}
	}
	return current
}

// Parse implements SheetParser. Rows are scanned once; rows whose first
// cell looks like a fiscal-year label are data rows for the area the
// cursor currently points at.
func (p *MonthlyComparisonParser) Parse(ctx context.Context, wb *Workbook, sheetName string) ([]domain.SalesRecord, error) {
	table, err := wb.ReadTable(sheetName, monthlyComparisonHeaderRow)
	if err != nil {
		return nil, err
	}
	monthCols := exactMonthColumns(table)

	var records []domain.SalesRecord
	// The first block is Kerala on every observed sheet.
	area := "KERALA"

	for row := 0; row < table.NumRows(); row++ {
		first := table.Cell(row, 0)
		area = nextArea(area, first)

		if !fiscal.LooksLikeFiscalYear(first) {
			continue
		}
		fyLabel := strings.ToUpper(first)
		startYear, haveYear := fiscal.StartYear(fyLabel)

		state := ""
		if _, ok := stateMarkers[area]; ok {
			state = area
		}

		for _, mc := range monthCols {
			value, ok := table.Numeric(row, mc.Index)
			if !ok || value == 0 {
				continue
			}
			rec := domain.SalesRecord{
				Area:        area,
				State:       state,
				FiscalYear:  fyLabel,
				MonthName:   mc.Header,
				Month:       mc.Month,
				Sales:       value,
				SourceSheet: sheetName,
			}
			if haveYear {
				rec.Date = fiscal.CalendarMonth(startYear, mc.Month)
			}
			records = append(records, rec)
		}
	}

	p.logger.DebugContext(ctx, "parsed monthly comparison sheet",
		slog.String("sheet", sheetName),
		slog.Int("records", len(records)))
	return records, nil
}
