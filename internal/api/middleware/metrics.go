package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "collections_http_requests_total",
		Help: "HTTP requests served, by server, method, route pattern and status.",
	}, []string{"server", "method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "collections_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"server", "method", "route"})

	httpRequestsInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "collections_http_requests_in_flight",
		Help: "HTTP requests currently being served.",
	}, []string{"server"})
)

// MetricsMiddleware records request counts, latency and in-flight requests
// for the named server.
func MetricsMiddleware(server string) func(next http.Handler) http.Handler {
	inFlight := httpRequestsInFlight.WithLabelValues(server)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			inFlight.Inc()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				inFlight.Dec()
				route := routePattern(r)
				httpRequestsTotal.WithLabelValues(server, r.Method, route, strconv.Itoa(ww.Status())).Inc()
				httpRequestDuration.WithLabelValues(server, r.Method, route).Observe(time.Since(start).Seconds())
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
