package client

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shanavasvb/payment-app-frontend/internal/pkg/envelope"
)

const (
	outcomeSuccess   = "success"
	outcomeRejected  = "rejected"
	outcomeTransport = "transport_error"
	outcomeCancelled = "cancelled"
)

var (
	backendCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "collections_backend_calls_total",
		Help: "Total number of calls made to the collections backend.",
	}, []string{"operation", "outcome"})

	backendCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "collections_backend_call_duration_seconds",
		Help:    "Duration of calls to the collections backend in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "outcome"})
)

func observe(op, outcome string, elapsed time.Duration) {
	backendCallsTotal.WithLabelValues(op, outcome).Inc()
	backendCallDuration.WithLabelValues(op, outcome).Observe(elapsed.Seconds())
}

func outcomeOf[T any](ctx context.Context, resp envelope.Envelope[T], err error) string {
	switch {
	case ctx.Err() != nil:
		return outcomeCancelled
	case err != nil:
		return outcomeTransport
	case !resp.Success:
		return outcomeRejected
	default:
		return outcomeSuccess
	}
}
