package domain

// ForecastMethod identifies which strategy produced a forecast.
type ForecastMethod string

const (
	// MethodHoltWinters is the fitted seasonal exponential-smoothing model.
	MethodHoltWinters ForecastMethod = "holt_winters"
	// MethodSeasonalNaive reuses the same calendar month one year earlier.
	MethodSeasonalNaive ForecastMethod = "seasonal_naive"
	// MethodFlat repeats the last observed value (degenerate series).
	MethodFlat ForecastMethod = "flat"
)

// Forecast holds the projected monthly values for one group key. Points
// always has exactly the requested horizon length and strictly follows
// the last observed month of the source series.
type Forecast struct {
	Key    string         `json:"key"`
	Method ForecastMethod `json:"method"`
	Points []MonthPoint   `json:"points"`
}

// Total returns the sum of all forecast values.
func (f Forecast) Total() float64 {
	var total float64
	for _, p := range f.Points {
		total += p.Value
	}
	return total
}
