package dataprocessing

import (
	"context"
	"log/slog"
	"strings"

	"salescli/pkg/contracts/domain"
)

// areaKeywords is the vocabulary used to harvest an area label from a
// particulars-like column when no area column exists.
var areaKeywords = []string{"KERALA", "KARNATAKA", "TAMIL", "ZONE", "REGION", "STATE", "MSD"}

// GenericParser is the fallback for any sheet that no named archetype
// claims: detect the header row, guess the key columns, and unpivot.
type GenericParser struct {
	headerCandidates []int
	logger           *slog.Logger
}

// NewGenericParser returns the generic fallback parser.
func NewGenericParser(headerCandidates []int, logger *slog.Logger) *GenericParser {
	return &GenericParser{
		headerCandidates: headerCandidates,
		logger:           logger.With(slog.String("parser", "generic")),
	}
}

// Name implements SheetParser.
func (p *GenericParser) Name() string { return "generic" }

// Matches implements SheetParser. The generic parser takes any sheet.
func (p *GenericParser) Matches(string) bool { return true }

// Parse implements SheetParser.
func (p *GenericParser) Parse(ctx context.Context, wb *Workbook, sheetName string) ([]domain.SalesRecord, error) {
	layout, err := DetectLayout(wb, sheetName, p.headerCandidates, p.logger)
	if err != nil {
		return nil, err
	}
	table := layout.Table

	// Widen month detection once the layout is known: decorated headers
	// like "Sales Apr" count too.
	monthCols := looseMonthColumns(table)
	if len(monthCols) == 0 {
		monthCols = layout.MonthColumns
	}

	keys := detectKeyColumns(table)
	fixedArea := ""
	if keys.area < 0 {
		fixedArea = p.harvestArea(table, sheetName)
	}

	records := longFromWide(table, keys, fixedArea, monthCols, sheetName)

	p.logger.DebugContext(ctx, "parsed generic sheet",
		slog.String("sheet", sheetName),
		slog.String("detection", layout.Strategy),
		slog.Int("month_columns", len(monthCols)),
		slog.Int("records", len(records)))
	return records, nil
}

// keyColumns holds the positions of the identifying columns, -1 when absent.
type keyColumns struct {
	area  int
	state int
	year  int
}

// detectKeyColumns finds area/state/year columns by header substring.
func detectKeyColumns(table *RawTable) keyColumns {
	keys := keyColumns{area: -1, state: -1, year: -1}
	for i, header := range table.Headers {
		h := strings.ToLower(header)
		if keys.area < 0 {
			for _, k := range []string{"area", "region", "territory", "zone"} {
				if strings.Contains(h, k) {
					keys.area = i
					break
				}
			}
		}
		if keys.state < 0 && strings.Contains(h, "state") {
			keys.state = i
		}
		if keys.year < 0 {
			for _, k := range []string{"year", "fy", "fiscal", "yr"} {
				if strings.Contains(h, k) {
					keys.year = i
					break
				}
			}
		}
	}
	return keys
}

// harvestArea recovers an area label when no area column exists: first
// from a particulars-like column whose early cells mention an area
// keyword, then synthesized from the sheet name.
func (p *GenericParser) harvestArea(table *RawTable, sheetName string) string {
	for i, header := range table.Headers {
		if !strings.Contains(strings.ToLower(header), "particular") {
			continue
		}
		limit := table.NumRows()
		if limit > 20 {
			limit = 20
		}
		for row := 0; row < limit; row++ {
			cell := strings.ToUpper(table.Cell(row, i))
			if cell == "" {
				continue
			}
			for _, keyword := range areaKeywords {
				if strings.Contains(cell, keyword) {
					return cell
				}
			}
		}
	}
	return "FY_" + strings.ReplaceAll(sheetName, "-", "_")
}
