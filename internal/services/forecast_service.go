package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"salescli/internal/forecast"
	"salescli/internal/series"
	"salescli/pkg/contracts/domain"
)

const (
	// DefaultHorizon is the number of months forecast when the caller
	// does not ask for one.
	DefaultHorizon = 3
	// MaxHorizon caps requested horizons at two years of months.
	MaxHorizon = 24
	// defaultConcurrency bounds the per-group fitting workers.
	defaultConcurrency = 4
)

// GroupForecast pairs a grouped historical series with its forecast.
type GroupForecast struct {
	Series   domain.MonthlySeries
	Forecast domain.Forecast
}

// ForecastRun is the outcome of forecasting a full dataset.
type ForecastRun struct {
	Mode    series.GroupingMode
	Horizon int
	Groups  []GroupForecast
}

// ForecastService groups a dataset into monthly series and fits one
// model per group. Fitting is CPU bound, so groups run on a bounded
// worker pool.
type ForecastService struct {
	engine      *forecast.Engine
	logger      *slog.Logger
	metrics     *Metrics
	concurrency int
}

// NewForecastService wires the per-group engine. Concurrency below one
// falls back to the default pool size.
func NewForecastService(engine *forecast.Engine, concurrency int, logger *slog.Logger, metrics *Metrics) *ForecastService {
	if logger == nil {
		logger = slog.Default()
	}
	if concurrency < 1 {
		concurrency = defaultConcurrency
	}
	return &ForecastService{
		engine:      engine,
		logger:      logger.With("component", "forecast_service"),
		metrics:     metrics,
		concurrency: concurrency,
	}
}

// Run groups the dataset by mode and forecasts every group horizon
// months ahead. Group order in the result is deterministic.
func (s *ForecastService) Run(ctx context.Context, dataset domain.Dataset, mode series.GroupingMode, horizon int) (*ForecastRun, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidGrouping, mode)
	}
	if horizon == 0 {
		horizon = DefaultHorizon
	}
	if horizon < 1 || horizon > MaxHorizon {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHorizon, horizon)
	}

	grouped := series.Build(dataset, mode)
	if len(grouped) == 0 {
		return nil, ErrNoSeries
	}

	started := time.Now()
	groups := make([]GroupForecast, len(grouped))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, ms := range grouped {
		i, ms := i, ms
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fc := s.engine.Forecast(gctx, ms, horizon)
			mu.Lock()
			groups[i] = GroupForecast{Series: ms, Forecast: fc}
			mu.Unlock()
			s.metrics.forecastProduced(string(fc.Method))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].Series.Key < groups[j].Series.Key })
	s.metrics.observeForecastDuration(time.Since(started).Seconds())
	s.logger.InfoContext(ctx, "forecast run complete",
		slog.String("grouping", string(mode)),
		slog.Int("groups", len(groups)),
		slog.Int("horizon", horizon),
		slog.Duration("elapsed", time.Since(started)))

	return &ForecastRun{Mode: mode, Horizon: horizon, Groups: groups}, nil
}
