// Package services implements the business logic layer between the
// HTTP handlers and the parsing and forecasting packages.
//
// IngestService opens a workbook, dispatches each sheet to the parser
// registry, and concatenates the recovered records, isolating per-sheet
// failures so one malformed tab never sinks a run. ForecastService
// groups the resulting dataset into monthly series and fits one model
// per group on a bounded worker pool. Both services log through slog
// and publish Prometheus counters.
package services
