// Package forecast fits per-group monthly forecasting models.
//
// The primary model is Holt-Winters triple exponential smoothing with
// an additive trend and a twelve-month season. Seasonality is additive
// when the series touches zero or goes negative and multiplicative
// otherwise. Smoothing parameters are estimated by a coarse grid
// search refined with Nelder-Mead. Series that cannot support a
// seasonal fit fall back to a seasonal-naive projection, and flat or
// empty series to a constant repeat, so the engine always produces a
// full-horizon forecast.
package forecast
