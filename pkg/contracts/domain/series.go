package domain

import (
	"time"
)

// MonthPoint is one observation or forecast value at a month-start date.
type MonthPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// MonthlySeries is an ordered, gap-free monthly series for one group key.
// Every month between the first and last point is present exactly once.
type MonthlySeries struct {
	Key    string       `json:"key"`
	Points []MonthPoint `json:"points"`
}

// Len returns the number of monthly observations.
func (s MonthlySeries) Len() int {
	return len(s.Points)
}

// Values returns the observation values in order.
func (s MonthlySeries) Values() []float64 {
	vals := make([]float64, len(s.Points))
	for i, p := range s.Points {
		vals[i] = p.Value
	}
	return vals
}

// Last returns the final observation. ok is false for an empty series.
func (s MonthlySeries) Last() (MonthPoint, bool) {
	if len(s.Points) == 0 {
		return MonthPoint{}, false
	}
	return s.Points[len(s.Points)-1], true
}

// Sum returns the total of all observation values.
func (s MonthlySeries) Sum() float64 {
	var total float64
	for _, p := range s.Points {
		total += p.Value
	}
	return total
}

// DistinctValues returns the number of distinct observation values.
func (s MonthlySeries) DistinctValues() int {
	seen := make(map[float64]struct{}, len(s.Points))
	for _, p := range s.Points {
		seen[p.Value] = struct{}{}
	}
	return len(seen)
}

// ValueAt returns the observation for the given month. ok is false when
// the month is outside the series or was never observed.
func (s MonthlySeries) ValueAt(date time.Time) (float64, bool) {
	for _, p := range s.Points {
		if p.Date.Equal(date) {
			return p.Value, true
		}
	}
	return 0, false
}

// NextMonth returns the first day of the month following t.
func NextMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
}

// MonthStart truncates t to the first day of its month in UTC.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
