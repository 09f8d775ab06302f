package forecast

import (
	"context"
	"log/slog"
	"time"

	"salescli/pkg/contracts/domain"
)

// Engine produces per-group monthly forecasts. It never fails: series
// too short or too irregular for seasonal smoothing degrade to simpler
// methods, so every group always gets exactly the requested number of
// future points.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates an engine logging through the given logger.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger.With("component", "forecast")}
}

// Forecast projects the series horizon months past its last
// observation. Zero-sum and constant series produce a flat repeat of
// the last value; otherwise Holt-Winters smoothing is fitted, with a
// seasonal-naive projection when the fit fails.
func (e *Engine) Forecast(ctx context.Context, s domain.MonthlySeries, horizon int) domain.Forecast {
	if horizon < 0 {
		horizon = 0
	}
	start := e.startDate(s)

	if s.Sum() == 0 || s.DistinctValues() <= 1 {
		return domain.Forecast{
			Key:    s.Key,
			Method: domain.MethodFlat,
			Points: flatPoints(s, start, horizon),
		}
	}

	values := s.Values()
	multiplicative := allPositive(values)

	model := NewHoltWinters(multiplicative)
	if err := model.Fit(values); err != nil {
		e.logger.WarnContext(ctx, "smoothing fit failed, using seasonal naive",
			slog.String("group", s.Key),
			slog.Int("observations", len(values)),
			slog.String("error", err.Error()))
		return domain.Forecast{
			Key:    s.Key,
			Method: domain.MethodSeasonalNaive,
			Points: seasonalNaive(s, start, horizon),
		}
	}

	raw := model.Forecast(horizon)
	points := make([]domain.MonthPoint, horizon)
	date := start
	for i, v := range raw {
		points[i] = domain.MonthPoint{Date: date, Value: v}
		date = domain.NextMonth(date)
	}

	e.logger.DebugContext(ctx, "fitted seasonal smoothing",
		slog.String("group", s.Key),
		slog.Bool("multiplicative", multiplicative),
		slog.Float64("alpha", model.Alpha),
		slog.Float64("beta", model.Beta),
		slog.Float64("gamma", model.Gamma))

	return domain.Forecast{
		Key:    s.Key,
		Method: domain.MethodHoltWinters,
		Points: points,
	}
}

// startDate is the first month to forecast: the month after the last
// observation, or the upcoming month for an empty series.
func (e *Engine) startDate(s domain.MonthlySeries) time.Time {
	if last, ok := s.Last(); ok {
		return domain.NextMonth(last.Date)
	}
	return domain.NextMonth(domain.MonthStart(time.Now().UTC()))
}

// flatPoints repeats the last observed value, or zero when there is
// nothing to repeat.
func flatPoints(s domain.MonthlySeries, start time.Time, horizon int) []domain.MonthPoint {
	var value float64
	if last, ok := s.Last(); ok {
		value = last.Value
	}
	points := make([]domain.MonthPoint, horizon)
	date := start
	for i := range points {
		points[i] = domain.MonthPoint{Date: date, Value: value}
		date = domain.NextMonth(date)
	}
	return points
}

func allPositive(values []float64) bool {
	for _, v := range values {
		if v <= 0 {
			return false
		}
	}
	return true
}
