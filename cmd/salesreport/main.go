// Command salesreport runs the full pipeline offline: read a sales
// workbook, forecast every group, and write the report next to it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"salescli/internal/config"
	"salescli/internal/exporter"
	"salescli/internal/fiscal"
	"salescli/internal/forecast"
	"salescli/internal/infrastructure"
	"salescli/internal/series"
	"salescli/internal/services"
)

func main() {
	in := flag.String("in", "", "input workbook (.xlsx)")
	out := flag.String("out", "forecast_report.xlsx", "output report path (.xlsx or .csv)")
	horizon := flag.Int("horizon", 0, "months to forecast (default from config)")
	grouping := flag.String("grouping", "area", "grouping mode: area, state_area, or all")
	margin := flag.Float64("margin", 0, "profit margin percent for targets (default from config)")
	configFile := flag.String("config", "", "path to YAML config file (optional)")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: salesreport -in sales.xlsx [-out report.xlsx]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := infrastructure.InitializeLogger(cfg.Logging)

	if err := run(cfg, logger, *in, *out, *horizon, *grouping, *margin); err != nil {
		logger.Error("report generation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger, in, out string, horizon int, grouping string, margin float64) error {
	ctx := context.Background()

	data, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("read workbook: %w", err)
	}

	resolver := fiscal.NewResolver()
	if overrides, err := config.LoadTerritoryOverrides(cfg.Ingest.TerritoryFile); err != nil {
		return err
	} else if overrides != nil {
		resolver = fiscal.NewResolverWith(overrides.Territories, overrides.Aliases)
	}

	ingest := services.NewIngestService(services.IngestOptions{
		ExcludedSheets:   cfg.Ingest.ExcludedSheets,
		HeaderCandidates: cfg.Ingest.HeaderCandidates,
		Resolver:         resolver,
	}, logger)

	result, err := ingest.Ingest(ctx, data)
	if err != nil {
		return err
	}
	summary := services.Summarize(result)
	logger.Info("workbook ingested",
		slog.Int("records", summary.Records),
		slog.Int("areas", len(summary.Areas)),
		slog.Int("sheets", len(summary.Sheets)))

	engine := forecast.NewEngine(logger)
	forecasts := services.NewForecastService(engine, cfg.Forecast.MaxConcurrency, logger, nil)

	if horizon == 0 {
		horizon = cfg.Forecast.DefaultHorizon
	}
	run, err := forecasts.Run(ctx, result.Dataset, series.GroupingMode(grouping), horizon)
	if err != nil {
		return err
	}

	if margin == 0 {
		margin = cfg.Forecast.ProfitMargin
	}
	report := exporter.BuildReport(run, result.Dataset, margin)

	if strings.HasSuffix(strings.ToLower(out), ".csv") {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		if err := exporter.WriteForecastCSV(f, report.Forecasts, exporter.CSVOptions{BOMPrefix: true}); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	} else {
		payload, err := exporter.WriteXLSX(report)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, payload, 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	var total float64
	for _, row := range report.Summary {
		total += row.ForecastTotal
	}
	logger.Info("report written",
		slog.String("path", out),
		slog.Int("groups", len(run.Groups)),
		slog.Int("horizon", run.Horizon),
		slog.String("forecast_total", exporter.FormatLakhs(total)))
	return nil
}
