package exporter

import (
	"math"
	"sort"
	"time"

	"salescli/internal/services"
	"salescli/pkg/contracts/domain"
)

// DefaultProfitMargin is the percentage uplift applied to forecasts
// when building sales targets.
const DefaultProfitMargin = 15.0

// BuildReport turns a forecast run into the rows of the downloadable
// report. Targets scale each forecast by the profit margin percentage
// and round to two decimals; the summary totals each group's forecast.
func BuildReport(run *services.ForecastRun, historical domain.Dataset, marginPercent float64) domain.Report {
	report := domain.Report{
		Historical: sortedHistorical(historical),
	}
	uplift := 1 + marginPercent/100

	for _, g := range run.Groups {
		if len(g.Forecast.Points) == 0 {
			continue
		}

		target := domain.TargetRow{
			Area: g.Series.Key,
			Date: g.Forecast.Points[0].Date,
		}
		for _, p := range g.Forecast.Points {
			target.Columns = append(target.Columns, domain.TargetColumn{
				Header: targetHeader(p.Date),
				Target: round2(p.Value * uplift),
			})
			report.Forecasts = append(report.Forecasts, domain.ForecastRow{
				Area:     g.Series.Key,
				Date:     p.Date,
				Forecast: round2(p.Value),
			})
		}
		report.Targets = append(report.Targets, target)
		report.Summary = append(report.Summary, domain.SummaryRow{
			Area:          g.Series.Key,
			ForecastTotal: round2(g.Forecast.Total()),
		})
	}
	return report
}

// targetHeader renders a month column header like "September Target".
func targetHeader(date time.Time) string {
	return date.Month().String() + " Target"
}

func sortedHistorical(dataset domain.Dataset) []domain.SalesRecord {
	records := make([]domain.SalesRecord, len(dataset.Records))
	copy(records, dataset.Records)
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Area != records[j].Area {
			return records[i].Area < records[j].Area
		}
		return records[i].Date.Before(records[j].Date)
	})
	return records
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
