package dataprocessing

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"salescli/internal/fiscal"
)

// ErrLayoutNotFound signals that no header-row candidate nor the
// brute-force scan produced enough month columns for a sheet. Callers
// skip the sheet; the error is never fatal to the whole run.
var ErrLayoutNotFound = errors.New("no header row with enough month columns")

const (
	// minMonthColumns is the acceptance threshold for a header row.
	// Tolerates a few missing months while rejecting accidental matches.
	minMonthColumns = 8
	// bruteForceRows bounds the row-content scan of the fallback pass.
	bruteForceRows = 20
)

// DefaultHeaderCandidates are the header-row guesses for the generic
// detector, ordered by how often each row position appears in the known
// workbook layouts.
var DefaultHeaderCandidates = []int{6, 8, 5, 7, 9, 10}

// Layout is a detected table shape: the table itself plus its month
// columns and the name of the strategy that found it.
type Layout struct {
	Table        *RawTable
	MonthColumns []MonthColumn
	Strategy     string
}

// MonthColumn pairs a column position with its resolved month number.
type MonthColumn struct {
	Index  int
	Header string
	Month  int
}

// DetectLayout locates the header row of a sheet. Each candidate row is
// tried in order and accepted when at least minMonthColumns column
// headers are exact month names. When every candidate fails, the first
// bruteForceRows raw rows are scanned for a row whose cells mention at
// least minMonthColumns month names and that row becomes the header.
func DetectLayout(wb *Workbook, sheet string, candidates []int, logger *slog.Logger) (*Layout, error) {
	if len(candidates) == 0 {
		candidates = DefaultHeaderCandidates
	}

	for _, headerRow := range candidates {
		table, err := wb.ReadTable(sheet, headerRow)
		if err != nil {
			continue
		}
		if cols := exactMonthColumns(table); len(cols) >= minMonthColumns {
			logger.Debug("header row accepted",
				slog.String("sheet", sheet),
				slog.Int("header_row", headerRow),
				slog.Int("month_columns", len(cols)))
			return &Layout{
				Table:        table,
				MonthColumns: cols,
				Strategy:     fmt.Sprintf("candidate_row_%d", headerRow),
			}, nil
		}
	}

	// Brute force: look at cell contents, not parsed headers.
	raw, err := wb.RawRows(sheet, bruteForceRows)
	if err != nil {
		return nil, err
	}
	for rowIdx, row := range raw {
		count := 0
		for _, cell := range row {
			if fiscal.ContainsMonthName(cell) {
				count++
			}
		}
		if count < minMonthColumns {
			continue
		}
		table, err := wb.ReadTable(sheet, rowIdx)
		if err != nil {
			continue
		}
		if cols := exactMonthColumns(table); len(cols) >= minMonthColumns {
			logger.Debug("header row found by content scan",
				slog.String("sheet", sheet),
				slog.Int("header_row", rowIdx),
				slog.Int("month_columns", len(cols)))
			return &Layout{
				Table:        table,
				MonthColumns: cols,
				Strategy:     fmt.Sprintf("content_scan_row_%d", rowIdx),
			}, nil
		}
	}

	return nil, fmt.Errorf("sheet %q: %w", sheet, ErrLayoutNotFound)
}

// exactMonthColumns returns the columns whose header is exactly one of
// the twelve month names after separator normalization, de-duplicated
// and ordered by the fiscal April-to-March cycle.
func exactMonthColumns(table *RawTable) []MonthColumn {
	var cols []MonthColumn
	seen := make(map[int]struct{})
	for i, header := range table.Headers {
		month, ok := fiscal.MonthNumber(fiscal.NormalizeHeader(header))
		if !ok {
			continue
		}
		if _, dup := seen[month]; dup {
			continue
		}
		seen[month] = struct{}{}
		cols = append(cols, MonthColumn{Index: i, Header: header, Month: month})
	}
	sort.Slice(cols, func(a, b int) bool {
		return fiscal.FiscalOrder(cols[a].Month) < fiscal.FiscalOrder(cols[b].Month)
	})
	return cols
}

// looseMonthColumns resolves month columns by token and substring
// matching, for sheets whose headers decorate the month name (for
// example "Sales Apr"). Used after detection succeeds.
func looseMonthColumns(table *RawTable) []MonthColumn {
	var cols []MonthColumn
	seen := make(map[int]struct{})
	for i, header := range table.Headers {
		if len(fiscal.NormalizeHeader(header)) > 15 {
			// Long headers mention months incidentally; skip them.
			continue
		}
		month, ok := fiscal.HeaderMonth(header)
		if !ok {
			continue
		}
		if _, dup := seen[month]; dup {
			continue
		}
		seen[month] = struct{}{}
		cols = append(cols, MonthColumn{Index: i, Header: header, Month: month})
	}
	sort.Slice(cols, func(a, b int) bool {
		return fiscal.FiscalOrder(cols[a].Month) < fiscal.FiscalOrder(cols[b].Month)
	})
	return cols
}
