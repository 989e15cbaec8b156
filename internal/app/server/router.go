package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"perfdash/internal/domain/dashboard"
	"perfdash/internal/platform/metrics"
	"perfdash/internal/transport/http/api"
	dashboardhandler "perfdash/internal/transport/http/handlers/dashboard"
	"perfdash/internal/transport/http/middleware"
)

type RouterOptions struct {
	Logger       *slog.Logger
	Metrics      *metrics.Collector
	AuthSecret   string
	AuthRequired bool
	Production   bool
}

// NewRouter builds the public API. Unknown paths and unsupported methods
// both answer 404.
func NewRouter(service *dashboard.Service, opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	if opts.Metrics != nil {
		router.Use(middleware.Metrics(opts.Metrics))
	}
	router.Use(middleware.CORS)
	router.Use(middleware.SecureHeaders(opts.Production))
	router.Use(middleware.Recoverer(logger))

	router.NotFound(api.NotFound)
	router.MethodNotAllowed(api.NotFound)

	router.Group(func(r chi.Router) {
		if opts.AuthRequired || opts.AuthSecret != "" {
			r.Use(middleware.Auth(opts.AuthSecret, opts.AuthRequired))
		}
		dashboardhandler.NewHandler(service, logger).RegisterRoutes(r)
	})

	return router
}

// NewOpsRouter serves liveness, readiness and Prometheus metrics.
func NewOpsRouter(pinger Pinger, collector *metrics.Collector) http.Handler {
	router := chi.NewRouter()

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if pinger != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := pinger.Ping(ctx); err != nil {
				http.Error(w, "store not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if collector != nil {
		router.Method(http.MethodGet, "/metrics", collector.Handler())
	}
	return router
}
