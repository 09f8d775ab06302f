package series

import (
	"fmt"
	"sort"
	"time"

	"salescli/pkg/contracts/domain"
)

// GroupingMode selects the dimension monthly sales are aggregated by
// before forecasting.
type GroupingMode string

const (
	// GroupByArea keys each series by canonical area.
	GroupByArea GroupingMode = "area"
	// GroupByStateArea keys each series by "STATE - AREA"; a missing
	// state reads as the literal "NA".
	GroupByStateArea GroupingMode = "state_area"
	// GroupAll collapses everything into a single series keyed "All".
	GroupAll GroupingMode = "all"
)

// Valid reports whether the mode is one of the known constants.
func (m GroupingMode) Valid() bool {
	switch m {
	case GroupByArea, GroupByStateArea, GroupAll:
		return true
	}
	return false
}

// GroupKey computes the group key of one record under the mode.
func (m GroupingMode) GroupKey(r domain.SalesRecord) string {
	switch m {
	case GroupAll:
		return "All"
	case GroupByStateArea:
		state := r.State
		if state == "" {
			state = "NA"
		}
		area := r.Area
		if area == "" {
			area = "NA"
		}
		return fmt.Sprintf("%s - %s", state, area)
	default:
		if r.Area == "" {
			return domain.AreaUnspecified
		}
		return r.Area
	}
}

// Build groups a dataset by the mode, sums duplicate (key, month)
// values, rescales to lakhs and resamples every group to a strict
// gap-free monthly grid. Records without a date are skipped. The result
// is sorted by group key.
func Build(dataset domain.Dataset, mode GroupingMode) []domain.MonthlySeries {
	type monthTotal map[time.Time]float64
	groups := make(map[string]monthTotal)

	for _, r := range dataset.Records {
		if !r.HasDate() {
			continue
		}
		key := mode.GroupKey(r)
		if groups[key] == nil {
			groups[key] = make(monthTotal)
		}
		groups[key][domain.MonthStart(r.Date)] += r.Sales
	}

	out := make([]domain.MonthlySeries, 0, len(groups))
	for key, totals := range groups {
		points := make([]domain.MonthPoint, 0, len(totals))
		for date, total := range totals {
			points = append(points, domain.MonthPoint{Date: date, Value: ToLakhs(total)})
		}
		sort.Slice(points, func(a, b int) bool {
			return points[a].Date.Before(points[b].Date)
		})
		out = append(out, domain.MonthlySeries{Key: key, Points: Resample(points)})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Key < out[b].Key })
	return out
}
