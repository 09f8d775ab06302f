package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"salescli/internal/config"
	apierrors "salescli/internal/errors"
	"salescli/internal/middleware"
)

// RouterDeps bundles everything the router mounts.
type RouterDeps struct {
	Forecast     *ForecastHandler
	Health       *HealthHandler
	ErrorHandler *apierrors.ErrorHandler
	Logger       *slog.Logger
}

// NewRouter assembles the API router with the standard middleware
// chain.
func NewRouter(cfg config.ServerConfig, deps RouterDeps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.StructuredLogger(deps.Logger))
	r.Use(middleware.Recoverer(deps.Logger))
	r.Use(middleware.MaxBytes(cfg.MaxUploadBytes))
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, deps.Logger)
		r.Use(limiter.Handler)
	}
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Route("/api", func(r chi.Router) {
		r.Mount("/health", deps.Health.Routes())
		r.Mount("/sales", deps.Forecast.Routes())
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.NotFound(deps.ErrorHandler.NotFound)

	return r
}
