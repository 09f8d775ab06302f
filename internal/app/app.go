package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"salescli/internal/config"
	apierrors "salescli/internal/errors"
	"salescli/internal/fiscal"
	"salescli/internal/forecast"
	"salescli/internal/infrastructure"
	"salescli/internal/services"
	transporthttp "salescli/internal/transport/http"
)

// Application wires configuration, services, and the HTTP server.
type Application struct {
	cfg    *config.Config
	logger *slog.Logger
	server *http.Server
}

// NewApplication builds the application from the given config file
// path, which may be empty.
func NewApplication(configFile string) (*Application, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := infrastructure.InitializeLogger(cfg.Logging)

	resolver, err := buildResolver(cfg.Ingest)
	if err != nil {
		return nil, err
	}

	metrics := services.NewMetrics(prometheus.DefaultRegisterer)
	ingest := services.NewIngestService(services.IngestOptions{
		ExcludedSheets:   cfg.Ingest.ExcludedSheets,
		HeaderCandidates: cfg.Ingest.HeaderCandidates,
		Resolver:         resolver,
		Metrics:          metrics,
	}, logger)

	engine := forecast.NewEngine(logger)
	forecasts := services.NewForecastService(engine, cfg.Forecast.MaxConcurrency, logger, metrics)

	errorHandler := apierrors.NewErrorHandler(logger, cfg.Logging.Level == "debug")
	forecastHandler := transporthttp.NewForecastHandler(ingest, forecasts, transporthttp.ForecastHandlerOptions{
		DefaultHorizon: cfg.Forecast.DefaultHorizon,
		ProfitMargin:   cfg.Forecast.ProfitMargin,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
	}, logger, errorHandler)
	healthHandler := transporthttp.NewHealthHandler(logger)

	router := transporthttp.NewRouter(cfg.Server, transporthttp.RouterDeps{
		Forecast:     forecastHandler,
		Health:       healthHandler,
		ErrorHandler: errorHandler,
		Logger:       logger,
	})

	server := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	return &Application{
		cfg:    cfg,
		logger: logger,
		server: server,
	}, nil
}

// buildResolver applies territory overrides from the optional YAML
// file named in the ingest config.
func buildResolver(cfg config.IngestConfig) (*fiscal.Resolver, error) {
	overrides, err := config.LoadTerritoryOverrides(cfg.TerritoryFile)
	if err != nil {
		return nil, err
	}
	if overrides == nil {
		return fiscal.NewResolver(), nil
	}
	return fiscal.NewResolverWith(overrides.Territories, overrides.Aliases), nil
}

// Run starts the HTTP server and blocks until shutdown.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server starting",
			slog.Int("port", a.cfg.Server.Port),
			slog.String("version", transporthttp.Version))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	a.logger.Info("server stopped")
	return nil
}

// Shutdown stops the server outside of signal handling, for tests.
func (a *Application) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}

// Handler exposes the assembled router, for tests.
func (a *Application) Handler() http.Handler {
	return a.server.Handler
}

// WaitForReady polls the health endpoint until the deadline. Useful
// for scripts that start the server as a subprocess.
func WaitForReady(ctx context.Context, baseURL string) error {
	client := &http.Client{Timeout: time.Second}
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/health/ready", nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
