package domain

import (
	"time"
)

// TargetRow is one line of the "Forecast Target For Areas" sheet: the
// forecast for each horizon month scaled by the profit margin.
type TargetRow struct {
	Area    string         `json:"area"`
	Date    time.Time      `json:"date"`
	Columns []TargetColumn `json:"columns"`
}

// TargetColumn is one month's target value with its display header
// (e.g. "September Target").
type TargetColumn struct {
	Header string  `json:"header"`
	Target float64 `json:"target"`
}

// SummaryRow is one line of the Summary sheet: total forecast per group.
type SummaryRow struct {
	Area          string  `json:"area"`
	ForecastTotal float64 `json:"forecast_total"`
}

// ForecastRow is one line of the flat Area_Forecast sheet.
type ForecastRow struct {
	Area     string    `json:"area"`
	Date     time.Time `json:"date"`
	Forecast float64   `json:"forecast"`
}

// Report bundles the rows of every sheet in the downloadable workbook.
// The core produces these rows; serialization is the exporter's job.
type Report struct {
	Targets    []TargetRow   `json:"targets"`
	Summary    []SummaryRow  `json:"summary"`
	Forecasts  []ForecastRow `json:"forecasts"`
	Historical []SalesRecord `json:"historical"`
}
