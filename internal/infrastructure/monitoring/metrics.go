package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type BusinessMetrics struct {
	PaymentsTotal   *prometheus.CounterVec
	AmountCollected prometheus.Counter
	EventsPublished *prometheus.CounterVec
}

var (
	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "collections_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Business = BusinessMetrics{
		PaymentsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "collections_payments_total",
				Help: "Total number of payment attempts by outcome.",
			},
			[]string{"status"},
		),
		AmountCollected: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "collections_amount_collected_total",
				Help: "Sum of all successfully recorded payment amounts.",
			},
		),
		EventsPublished: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "collections_events_published_total",
				Help: "Total number of domain events handed to the broker by outcome.",
			},
			[]string{"routing_key", "status"},
		),
	}
)

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

// RecordPayment counts a payment attempt. The amount is added to the
// collected total only for successful payments.
func RecordPayment(status string, amount float64) {
	Business.PaymentsTotal.WithLabelValues(status).Inc()
	if status == StatusSuccess {
		Business.AmountCollected.Add(amount)
	}
}

func RecordEventPublished(routingKey, status string) {
	Business.EventsPublished.WithLabelValues(routingKey, status).Inc()
}

// QueryStatus maps a query error to the status label.
func QueryStatus(err error) string {
	if err != nil {
		return StatusFailure
	}
	return StatusSuccess
}
