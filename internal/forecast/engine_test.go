package forecast

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salescli/pkg/contracts/domain"
)

func testEngine() *Engine {
	return NewEngine(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func monthlySeries(key string, start time.Time, values []float64) domain.MonthlySeries {
	points := make([]domain.MonthPoint, len(values))
	date := start
	for i, v := range values {
		points[i] = domain.MonthPoint{Date: date, Value: v}
		date = domain.NextMonth(date)
	}
	return domain.MonthlySeries{Key: key, Points: points}
}

func TestForecastHorizonLength(t *testing.T) {
	start := time.Date(2021, time.April, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		values  []float64
		horizon int
	}{
		{name: "empty series", values: nil, horizon: 3},
		{name: "single observation", values: []float64{42}, horizon: 5},
		{name: "all zeros", values: make([]float64, 12), horizon: 3},
		{name: "constant", values: repeat(100, 12), horizon: 2},
		{name: "short varying", values: []float64{10, 20, 30}, horizon: 4},
		{name: "two seasons", values: seasonalPattern(24), horizon: 6},
	}

	engine := testEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := engine.Forecast(context.Background(), monthlySeries("g", start, tt.values), tt.horizon)
			require.Len(t, fc.Points, tt.horizon)
			for _, p := range fc.Points {
				assert.False(t, math.IsNaN(p.Value), "point %v is NaN", p.Date)
				assert.False(t, math.IsInf(p.Value, 0), "point %v is infinite", p.Date)
			}
		})
	}
}

func TestForecastZeroSeries(t *testing.T) {
	start := time.Date(2022, time.April, 1, 0, 0, 0, 0, time.UTC)
	fc := testEngine().Forecast(context.Background(), monthlySeries("z", start, make([]float64, 12)), 3)

	assert.Equal(t, domain.MethodFlat, fc.Method)
	require.Len(t, fc.Points, 3)
	for _, p := range fc.Points {
		assert.Zero(t, p.Value)
	}
	assert.Equal(t, time.Date(2023, time.April, 1, 0, 0, 0, 0, time.UTC), fc.Points[0].Date)
}

func TestForecastConstantSeries(t *testing.T) {
	start := time.Date(2022, time.April, 1, 0, 0, 0, 0, time.UTC)
	fc := testEngine().Forecast(context.Background(), monthlySeries("c", start, repeat(100, 18)), 2)

	assert.Equal(t, domain.MethodFlat, fc.Method)
	require.Len(t, fc.Points, 2)
	assert.InDelta(t, 100, fc.Points[0].Value, 1e-9)
	assert.InDelta(t, 100, fc.Points[1].Value, 1e-9)
}

func TestForecastShortSeriesFallsBack(t *testing.T) {
	start := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	fc := testEngine().Forecast(context.Background(), monthlySeries("s", start, []float64{10, 20, 30}), 1)

	assert.Equal(t, domain.MethodSeasonalNaive, fc.Method)
	require.Len(t, fc.Points, 1)
	assert.Equal(t, time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), fc.Points[0].Date)
	// Too short for a season back, so the last value carries forward.
	assert.InDelta(t, 30, fc.Points[0].Value, 1e-9)
}

func TestForecastSeasonalSeries(t *testing.T) {
	start := time.Date(2020, time.April, 1, 0, 0, 0, 0, time.UTC)
	values := seasonalPattern(36)
	fc := testEngine().Forecast(context.Background(), monthlySeries("k", start, values), 12)

	assert.Equal(t, domain.MethodHoltWinters, fc.Method)
	require.Len(t, fc.Points, 12)
	assert.Equal(t, time.Date(2023, time.April, 1, 0, 0, 0, 0, time.UTC), fc.Points[0].Date)

	// The pattern repeats yearly, so forecasts should stay in the
	// neighbourhood of the observed range.
	for _, p := range fc.Points {
		assert.Greater(t, p.Value, 0.0)
		assert.Less(t, p.Value, 400.0)
	}
}

func TestForecastConsecutiveMonths(t *testing.T) {
	start := time.Date(2020, time.April, 1, 0, 0, 0, 0, time.UTC)
	fc := testEngine().Forecast(context.Background(), monthlySeries("m", start, seasonalPattern(24)), 6)

	for i := 1; i < len(fc.Points); i++ {
		assert.Equal(t, domain.NextMonth(fc.Points[i-1].Date), fc.Points[i].Date)
	}
}

func TestSeasonalNaiveUsesSameMonthLastYear(t *testing.T) {
	start := time.Date(2022, time.April, 1, 0, 0, 0, 0, time.UTC)
	values := make([]float64, 15)
	for i := range values {
		values[i] = float64(i + 1)
	}
	s := monthlySeries("n", start, values)

	// Last observation is June 2023; July 2023 should pick up July
	// 2022, the fourth observation.
	points := seasonalNaive(s, time.Date(2023, time.July, 1, 0, 0, 0, 0, time.UTC), 2)
	require.Len(t, points, 2)
	assert.InDelta(t, 4, points[0].Value, 1e-9)
	assert.InDelta(t, 5, points[1].Value, 1e-9)
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// seasonalPattern builds n months of a yearly cycle with a mild upward
// drift, strictly positive throughout.
func seasonalPattern(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100 + 50*math.Sin(2*math.Pi*float64(i)/12) + float64(i)
	}
	return out
}
