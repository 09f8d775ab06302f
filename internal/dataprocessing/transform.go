package dataprocessing

import (
	"strings"

	"salescli/internal/fiscal"
	"salescli/pkg/contracts/domain"
)

// longFromWide expands each table row carrying area/state/year keys and
// month-value columns into one record per non-empty, non-zero month
// cell. Zero cells are treated as "no data", not "no sales".
func longFromWide(table *RawTable, keys keyColumns, fixedArea string, monthCols []MonthColumn, sheetName string) []domain.SalesRecord {
	var records []domain.SalesRecord

	for row := 0; row < table.NumRows(); row++ {
		area := fixedArea
		if keys.area >= 0 {
			area = table.Cell(row, keys.area)
		}
		if area == "" {
			area = domain.AreaUnspecified
		}
		state := ""
		if keys.state >= 0 {
			state = table.Cell(row, keys.state)
		}
		fyLabel := ""
		startYear := 0
		haveYear := false
		if keys.year >= 0 {
			fyLabel = table.Cell(row, keys.year)
			startYear, haveYear = fiscal.StartYear(fyLabel)
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

	return inferMissingDates(records)
}

// inferMissingDates fills the calendar month of dateless records whose
// fiscal-year label resolved for some sibling record. Records still
// lacking a date afterwards are dropped.
func inferMissingDates(records []domain.SalesRecord) []domain.SalesRecord {
	starts := make(map[string]int)
	for _, r := range records {
		if !r.HasDate() || r.FiscalYear == "" {
			continue
		}
		label := strings.ToUpper(strings.TrimSpace(r.FiscalYear))
		if _, ok := starts[label]; !ok {
			if y, ok := fiscal.StartYear(r.FiscalYear); ok {
				starts[label] = y
			}
		}
	}

	out := records[:0]
	for _, r := range records {
		if !r.HasDate() {
			label := strings.ToUpper(strings.TrimSpace(r.FiscalYear))
			if y, ok := starts[label]; ok && r.Month >= 1 && r.Month <= 12 {
				r.Date = fiscal.CalendarMonth(y, r.Month)
			}
		}
		if !r.HasDate() {
			continue
		}
		out = append(out, r)
	}
	return out
}
