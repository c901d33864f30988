package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shanavasvb/payment-app-frontend/internal/api/handler"
	mw "github.com/shanavasvb/payment-app-frontend/internal/api/middleware"
	"github.com/shanavasvb/payment-app-frontend/internal/config"
	"github.com/shanavasvb/payment-app-frontend/internal/domain/ledger"
)

// SetupRouter builds the collections backend router serving /customers and /payments.
func SetupRouter(service ledger.Service, limiter *mw.RateLimiterMiddleware, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(router, limiter, cfg, logger)
	setupMetricsEndpoint(router, cfg, logger)
	setupCollectionRoutes(router, service, logger)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	return router
}

func setupMiddleware(router *chi.Mux, limiter *mw.RateLimiterMiddleware, cfg *config.Config, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	if cfg.API.RequestTimeout > 0 {
		router.Use(middleware.Timeout(cfg.API.RequestTimeout))
	}
	if limiter != nil {
		router.Use(limiter.Middleware)
	}
	router.Use(mw.MetricsMiddleware("api"))
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupCollectionRoutes(router *chi.Mux, service ledger.Service, logger *slog.Logger) {
	collectionsHandler := handler.NewCollectionsHandler(service, logger)

	router.Get("/customers", collectionsHandler.ListCustomers)
	router.Route("/payments", func(r chi.Router) {
		r.Get("/", collectionsHandler.ListPayments)
		r.Post("/", collectionsHandler.RecordPayment)
	})
}
