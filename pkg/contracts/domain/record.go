package domain

import (
	"sort"
	"time"
)

// AreaUnspecified is the sentinel area assigned to records whose source
// row carried no resolvable area label.
const AreaUnspecified = "Unspecified"

// SalesRecord is the atomic unit of the long-format dataset: one area,
// one calendar month, one signed sales amount in rupees.
type SalesRecord struct {
	Area        string    `json:"area" validate:"required"`
	State       string    `json:"state,omitempty"`
	FiscalYear  string    `json:"fiscal_year"`
	MonthName   string    `json:"month_name"`
	Month       int       `json:"month" validate:"min=1,max=12"`
	Date        time.Time `json:"date"`
	Sales       float64   `json:"sales"`
	SourceSheet string    `json:"source_sheet"`
}

// HasDate reports whether the record carries a resolved calendar month.
func (r SalesRecord) HasDate() bool {
	return !r.Date.IsZero()
}

// Dataset is an immutable collection of sales records accumulated across
// all sheets of one uploaded workbook. Build it once, then read only.
type Dataset struct {
	Records []SalesRecord `json:"records"`
}

// Len returns the number of records in the dataset.
func (d Dataset) Len() int {
	return len(d.Records)
}

// Empty reports whether the dataset contains no records.
func (d Dataset) Empty() bool {
	return len(d.Records) == 0
}

// Areas returns the distinct area names in the dataset, sorted.
func (d Dataset) Areas() []string {
	seen := make(map[string]struct{})
	for _, r := range d.Records {
		seen[r.Area] = struct{}{}
	}
	areas := make([]string, 0, len(seen))
	for a := range seen {
		areas = append(areas, a)
	}
	sort.Strings(areas)
	return areas
}

// DateRange returns the earliest and latest record dates. Records without
// a date are ignored. ok is false when no record carries a date.
func (d Dataset) DateRange() (min, max time.Time, ok bool) {
	for _, r := range d.Records {
		if !r.HasDate() {
			continue
		}
		if !ok || r.Date.Before(min) {
			min = r.Date
		}
		if !ok || r.Date.After(max) {
			max = r.Date
		}
		ok = true
	}
	return min, max, ok
}

// FilterAreas returns a dataset containing only records whose area is in
// the given set. An empty set returns the dataset unchanged.
func (d Dataset) FilterAreas(areas []string) Dataset {
	if len(areas) == 0 {
		return d
	}
	keep := make(map[string]struct{}, len(areas))
	for _, a := range areas {
		keep[a] = struct{}{}
	}
	out := Dataset{Records: make([]SalesRecord, 0, len(d.Records))}
	for _, r := range d.Records {
		if _, ok := keep[r.Area]; ok {
			out.Records = append(out.Records, r)
		}
	}
	return out
}
