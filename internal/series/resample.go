package series

import (
	"salescli/pkg/contracts/domain"
)

// rupeesPerLakh converts rupee amounts to lakhs for modeling and
// display. The scaling is linear and reversible; it never changes the
// shape of a series.
const rupeesPerLakh = 100000

// ToLakhs converts a rupee amount to lakhs.
func ToLakhs(rupees float64) float64 {
	return rupees / rupeesPerLakh
}

// FromLakhs converts a lakh amount back to rupees.
func FromLakhs(lakhs float64) float64 {
	return lakhs * rupeesPerLakh
}

// Resample reindexes sorted month points onto a strict consecutive
// month-start grid spanning the observed min to max month. Interior gaps
// take the most recent prior value; months with no prior observation
// read zero. The result is gap-free: every month in the span has a
// defined numeric value.
func Resample(points []domain.MonthPoint) []domain.MonthPoint {
	if len(points) == 0 {
		return nil
	}

	observed := make(map[int64]float64, len(points))
	for _, p := range points {
		observed[domain.MonthStart(p.Date).Unix()] = p.Value
	}

	start := domain.MonthStart(points[0].Date)
	end := domain.MonthStart(points[len(points)-1].Date)

	var out []domain.MonthPoint
	last := 0.0
	haveLast := false
	for current := start; !current.After(end); current = domain.NextMonth(current) {
		value, ok := observed[current.Unix()]
		if !ok {
			if haveLast {
				value = last
			} else {
				value = 0
			}
		}
		out = append(out, domain.MonthPoint{Date: current, Value: value})
		last = value
		haveLast = true
	}
	return out
}
