package dataprocessing

import (
	"context"
	"log/slog"
	"strings"

	"salescli/internal/fiscal"
	"salescli/pkg/contracts/domain"
)

const (
	// yearlyHeaderRow is where the month headers sit on yearly sheets.
	yearlyHeaderRow = 6
	// routeSalesWindow bounds the scan below the "ROUTE SALES" marker.
	routeSalesWindow = 100
)

// yearlySkipLabels are first-cell values that never name a territory.
var yearlySkipLabels = map[string]struct{}{
	"":              {},
	"NAN":           {},
	"TOTAL":         {},
	"INSIDE KERALA": {},
	"CENTRAL ZONE":  {},
	"NORTH ZONE":    {},
	"SOUTH ZONE":    {},
}

// YearlyTerritoryParser handles sheets named after a fiscal year that
// carry a "ROUTE SALES" block of territory rows with month columns.
type YearlyTerritoryParser struct {
	resolver *fiscal.Resolver
	logger   *slog.Logger
}

// NewYearlyTerritoryParser returns the yearly-territory archetype parser.
func NewYearlyTerritoryParser(resolver *fiscal.Resolver, logger *slog.Logger) *YearlyTerritoryParser {
	return &YearlyTerritoryParser{
		resolver: resolver,
		logger:   logger.With(slog.String("parser", "yearly_territory")),
	}
}

// Name implements SheetParser.
func (p *YearlyTerritoryParser) Name() string { return "yearly_territory" }

// Matches implements SheetParser. The sheet name itself is the
// fiscal-year label on this archetype.
func (p *YearlyTerritoryParser) Matches(sheetName string) bool {
	return isYearlySheetName(sheetName)
}

// Parse implements SheetParser. The Route Sales block is scanned first;
// any territory still missing afterwards is searched for across the
// whole sheet, because some territories only appear in other sections
// (the debtors block spells NEYYATINKARA as "NEYYATTINKARA").
func (p *YearlyTerritoryParser) Parse(ctx context.Context, wb *Workbook, sheetName string) ([]domain.SalesRecord, error) {
	table, err := wb.ReadTable(sheetName, yearlyHeaderRow)
	if err != nil {
		return nil, err
	}
	monthCols := exactMonthColumns(table)
	startYear, haveYear := fiscal.StartYear(sheetName)

	routeStart := -1
	for row := 0; row < table.NumRows(); row++ {
		if strings.Contains(strings.ToUpper(table.Cell(row, 0)), "ROUTE SALES") {
			routeStart = row
			break
		}
	}
	if routeStart < 0 {
		p.logger.WarnContext(ctx, "route sales block not found",
			slog.String("sheet", sheetName))
		return nil, nil
	}

	var records []domain.SalesRecord
	found := make(map[string]struct{})

	end := routeStart + routeSalesWindow
	if end > table.NumRows() {
		end = table.NumRows()
	}
	for row := routeStart + 1; row < end; row++ {
		label := strings.ToUpper(table.Cell(row, 0))
		if _, skip := yearlySkipLabels[label]; skip {
			continue
		}
		territory, ok := p.resolver.Match(label)
		if !ok {
			continue
		}
		rows := p.territoryRecords(table, row, territory, sheetName, monthCols, startYear, haveYear)
		if len(rows) > 0 {
			found[territory] = struct{}{}
			records = append(records, rows...)
		}
	}

	// Second pass over the entire sheet for territories not yet seen.
	missing := make(map[string]struct{})
	for _, territory := range p.resolver.Territories() {
		if _, ok := found[territory]; !ok {
			missing[territory] = struct{}{}
		}
	}
	if len(missing) > 0 {
		for row := 0; row < table.NumRows(); row++ {
			label := strings.ToUpper(table.Cell(row, 0))
			if label == "" || label == "NAN" || label == "PARTICULARS" {
				continue
			}
			territory, ok := p.resolver.MatchMissing(label, missing)
			if !ok {
				continue
			}
			rows := p.territoryRecords(table, row, territory, sheetName, monthCols, startYear, haveYear)
			if len(rows) > 0 {
				delete(missing, territory)
				records = append(records, rows...)
			}
		}
	}

	p.logger.DebugContext(ctx, "parsed yearly territory sheet",
		slog.String("sheet", sheetName),
		slog.Int("territories", len(found)),
		slog.Int("records", len(records)))
	return records, nil
}

// territoryRecords expands one territory row into per-month records,
// dropping empty and zero cells.
func (p *YearlyTerritoryParser) territoryRecords(table *RawTable, row int, territory, sheetName string, monthCols []MonthColumn, startYear int, haveYear bool) []domain.SalesRecord {
	var out []domain.SalesRecord
	for _, mc := range monthCols {
		value, ok := table.Numeric(row, mc.Index)
		if !ok || value == 0 {
			continue
		}
		rec := domain.SalesRecord{
			Area:        territory,
			State:       "KERALA",
			FiscalYear:  sheetName,
			MonthName:   mc.Header,
			Month:       mc.Month,
			Sales:       value,
			SourceSheet: sheetName,
		}
		if haveYear {
			rec.Date = fiscal.CalendarMonth(startYear, mc.Month)
		}
		out = append(out, rec)
	}
	return out
}
