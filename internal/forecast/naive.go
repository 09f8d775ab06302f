package forecast

import (
	"time"

	"salescli/pkg/contracts/domain"
)

// seasonalNaive projects each future month from the observation twelve
// months earlier. When the same calendar month a year back is missing
// it falls back to the value one season before the series end, and
// finally to the last observation.
func seasonalNaive(s domain.MonthlySeries, start time.Time, horizon int) []domain.MonthPoint {
	values := s.Values()
	points := make([]domain.MonthPoint, 0, horizon)

	date := start
	for i := 0; i < horizon; i++ {
		value, ok := s.ValueAt(date.AddDate(-1, 0, 0))
		if !ok {
			if len(values) >= SeasonLength {
				value = values[len(values)-SeasonLength]
			} else if len(values) > 0 {
				value = values[len(values)-1]
			}
		}
		points = append(points, domain.MonthPoint{Date: date, Value: value})
		date = domain.NextMonth(date)
	}
	return points
}
