package dataprocessing

import (
	"context"
	"log/slog"
	"strings"

	"salescli/internal/fiscal"
	"salescli/pkg/contracts/domain"
)

const (
	// comparisonHeaderRow is where the year headers sit on the
	// comparison-report sheet.
	comparisonHeaderRow = 6
	// defaultReportMonth applies when no column header names the
	// reporting month.
	defaultReportMonth = 7 // July
)

// debtorsPrefix decorates some area names on the comparison sheet.
const debtorsPrefix = "Debtors - "

// comparisonSkipLabels are first-cell values that are structure, not areas.
var comparisonSkipLabels = map[string]struct{}{
	"":            {},
	"NAN":         {},
	"ROUTE SALES": {},
	"PARTICULARS": {},
}

// ComparisonReportParser handles the cross-year comparison sheet: one
// row per area, one column per fiscal year, all values belonging to a
// single reporting month named somewhere in the headers.
type ComparisonReportParser struct {
	resolver *fiscal.Resolver
	logger   *slog.Logger
}

// NewComparisonReportParser returns the comparison-report archetype parser.
func NewComparisonReportParser(resolver *fiscal.Resolver, logger *slog.Logger) *ComparisonReportParser {
	return &ComparisonReportParser{
		resolver: resolver,
		logger:   logger.With(slog.String("parser", "comparison_report")),
	}
}

// Name implements SheetParser.
func (p *ComparisonReportParser) Name() string { return "comparison_report" }

// Matches implements SheetParser.
func (p *ComparisonReportParser) Matches(sheetName string) bool {
	return sheetNameContains(sheetName, "COMPARISON REPORT")
}

// Parse implements SheetParser.
func (p *ComparisonReportParser) Parse(ctx context.Context, wb *Workbook, sheetName string) ([]domain.SalesRecord, error) {
	table, err := wb.ReadTable(sheetName, comparisonHeaderRow)
	if err != nil {
		return nil, err
	}

	// Year columns carry a hyphen plus digits, like "2018-2019".
	type yearColumn struct {
		index     int
		label     string
		startYear int
		haveYear  bool
	}
	var yearCols []yearColumn
	for i, header := range table.Headers {
		if !fiscal.LooksLikeFiscalYear(header) {
			continue
		}
		start, ok := fiscal.StartYear(header)
		yearCols = append(yearCols, yearColumn{index: i, label: header, startYear: start, haveYear: ok})
	}

	// The reporting month is embedded in a header, default July.
	month := defaultReportMonth
	monthName := "JULY"
	for _, header := range table.Headers {
		if m, ok := fiscal.HeaderMonth(header); ok {
			month = m
			monthName = strings.ToUpper(fiscal.MonthNames()[fiscal.FiscalOrder(m)])
		}
	}

	var records []domain.SalesRecord
	for row := 0; row < table.NumRows(); row++ {
		area := table.Cell(row, 0)
		if _, skip := comparisonSkipLabels[strings.ToUpper(area)]; skip {
			continue
		}
		area = strings.TrimSpace(strings.TrimPrefix(area, debtorsPrefix))
		area = p.resolver.Canonical(area)

		for _, yc := range yearCols {
			value, ok := table.Numeric(row, yc.index)
			if !ok || value == 0 {
				continue
			}
			rec := domain.SalesRecord{
				Area:        area,
				FiscalYear:  yc.label,
				MonthName:   monthName,
				Month:       month,
				Sales:       value,
				SourceSheet: sheetName,
			}
			if yc.haveYear {
				rec.Date = fiscal.CalendarMonth(yc.startYear, month)
			}
			records = append(records, rec)
		}
	}

	p.logger.DebugContext(ctx, "parsed comparison report sheet",
		slog.String("sheet", sheetName),
		slog.Int("year_columns", len(yearCols)),
		slog.Int("records", len(records)))
	return records, nil
}
