package forecast

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
)

// SeasonLength is the seasonal period of monthly sales data.
const SeasonLength = 12

var (
	// ErrInsufficientData means the series is shorter than two full
	// seasons, the minimum for seasonal initialization.
	ErrInsufficientData = errors.New("series shorter than two seasonal periods")
	// ErrNonPositive means a multiplicative model was requested for a
	// series containing zero or negative values.
	ErrNonPositive = errors.New("multiplicative seasonality requires strictly positive values")
	// ErrNoConvergence means no parameter combination produced a
	// finite fit error.
	ErrNoConvergence = errors.New("smoothing optimization did not converge")
)

// HoltWinters is a triple exponential-smoothing model with additive
// trend and either additive or multiplicative seasonality. Smoothing
// parameters are estimated from the data during Fit.
type HoltWinters struct {
	Period         int
	Multiplicative bool

	// Estimated smoothing parameters.
	Alpha, Beta, Gamma float64

	// Final state after fitting, used to roll forecasts forward.
	level    float64
	trend    float64
	seasonal []float64
	n        int
	sse      float64
}

// NewHoltWinters returns an unfitted model for the given seasonal mode.
func NewHoltWinters(multiplicative bool) *HoltWinters {
	return &HoltWinters{Period: SeasonLength, Multiplicative: multiplicative}
}

// Fit estimates the smoothing parameters from the series. A coarse grid
// over (alpha, beta, gamma) picks several starting points; each is
// refined with Nelder-Mead and the lowest squared-error fit wins. The
// grid pass makes the estimate robust to local optima the way a single
// local search is not.
func (m *HoltWinters) Fit(values []float64) error {
	if m.Period < 2 {
		return fmt.Errorf("invalid seasonal period %d", m.Period)
	}
	if len(values) < 2*m.Period {
		return fmt.Errorf("%w: have %d observations, need %d", ErrInsufficientData, len(values), 2*m.Period)
	}
	if m.Multiplicative {
		for _, v := range values {
			if v <= 0 {
				return ErrNonPositive
			}
		}
	}

	objective := func(params []float64) float64 {
		sse, _, err := m.run(values, params[0], params[1], params[2])
		if err != nil || math.IsNaN(sse) || math.IsInf(sse, 0) {
			return math.Inf(1)
		}
		return sse
	}

	best, bestSSE := m.gridSearch(objective)
	if math.IsInf(bestSSE, 0) {
		return ErrNoConvergence
	}

	// Refine the best grid points locally.
	problem := optimize.Problem{Func: objective}
	for _, start := range best {
		result, err := optimize.Minimize(problem, start, nil, &optimize.NelderMead{})
		if err != nil || result == nil {
			continue
		}
		if result.F < bestSSE && inUnitCube(result.X) {
			bestSSE = result.F
			copy(best[0], result.X)
		}
	}

	m.Alpha, m.Beta, m.Gamma = best[0][0], best[0][1], best[0][2]
	sse, state, err := m.run(values, m.Alpha, m.Beta, m.Gamma)
	if err != nil {
		return err
	}
	m.level = state.level
	m.trend = state.trend
	m.seasonal = state.seasonal
	m.n = len(values)
	m.sse = sse
	return nil
}

// gridSearch evaluates the objective over a coarse parameter grid and
// returns the three best starting points, best first.
func (m *HoltWinters) gridSearch(objective func([]float64) float64) ([][]float64, float64) {
	grid := []float64{0.1, 0.3, 0.5, 0.7, 0.9}

	type candidate struct {
		params []float64
		sse    float64
	}
	top := []candidate{
		{sse: math.Inf(1)}, {sse: math.Inf(1)}, {sse: math.Inf(1)},
	}

	for _, alpha := range grid {
		for _, beta := range grid {
			for _, gamma := range grid {
				params := []float64{alpha, beta, gamma}
				sse := objective(params)
				for i := range top {
					if sse < top[i].sse {
						copy(top[i+1:], top[i:len(top)-1])
						top[i] = candidate{params: params, sse: sse}
						break
					}
				}
			}
		}
	}

	out := make([][]float64, 0, len(top))
	for _, c := range top {
		if c.params != nil {
			out = append(out, c.params)
		}
	}
	return out, top[0].sse
}

// fitState carries the smoothing recursion's final components.
type fitState struct {
	level    float64
	trend    float64
	seasonal []float64
}

// run executes the smoothing recursion for one parameter set and
// returns the sum of squared one-step-ahead errors and the final state.
func (m *HoltWinters) run(values []float64, alpha, beta, gamma float64) (float64, fitState, error) {
	if !validSmoothing(alpha) || !validSmoothing(beta) || !validSmoothing(gamma) {
		return 0, fitState{}, fmt.Errorf("smoothing parameters out of range")
	}
	p := m.Period

	// Initial level and trend from the first two seasons.
	level := mean(values[:p])
	trend := (mean(values[p:2*p]) - level) / float64(p)

	seasonal := make([]float64, p)
	for i := 0; i < p; i++ {
		if m.Multiplicative {
			if level == 0 {
				return 0, fitState{}, ErrNonPositive
			}
			seasonal[i] = values[i] / level
		} else {
			seasonal[i] = values[i] - level
		}
	}

	var sse float64
	for i, y := range values {
		si := i % p
		var fitted, newLevel float64
		if m.Multiplicative {
			fitted = (level + trend) * seasonal[si]
			if seasonal[si] == 0 {
				return 0, fitState{}, ErrNoConvergence
			}
			newLevel = alpha*(y/seasonal[si]) + (1-alpha)*(level+trend)
		} else {
			fitted = level + trend + seasonal[si]
			newLevel = alpha*(y-seasonal[si]) + (1-alpha)*(level+trend)
		}
		newTrend := beta*(newLevel-level) + (1-beta)*trend
		if m.Multiplicative {
			if newLevel == 0 {
				return 0, fitState{}, ErrNoConvergence
			}
			seasonal[si] = gamma*(y/newLevel) + (1-gamma)*seasonal[si]
		} else {
			seasonal[si] = gamma*(y-newLevel) + (1-gamma)*seasonal[si]
		}
		level = newLevel
		trend = newTrend

		err := y - fitted
		sse += err * err
	}

	if math.IsNaN(sse) || math.IsInf(sse, 0) {
		return 0, fitState{}, ErrNoConvergence
	}
	return sse, fitState{level: level, trend: trend, seasonal: seasonal}, nil
}

// Forecast rolls the fitted model h steps past the end of the series.
// Fit must have succeeded first.
func (m *HoltWinters) Forecast(h int) []float64 {
	out := make([]float64, h)
	for i := 1; i <= h; i++ {
		si := (m.n + i - 1) % m.Period
		if m.Multiplicative {
			out[i-1] = (m.level + float64(i)*m.trend) * m.seasonal[si]
		} else {
			out[i-1] = m.level + float64(i)*m.trend + m.seasonal[si]
		}
	}
	return out
}

// SSE returns the fitted sum of squared one-step errors.
func (m *HoltWinters) SSE() float64 {
	return m.sse
}

func validSmoothing(v float64) bool {
	return v > 0 && v < 1
}

func inUnitCube(params []float64) bool {
	for _, v := range params {
		if !validSmoothing(v) {
			return false
		}
	}
	return true
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
