package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts handled requests.
	// Labels: method, route (gin route template), status (HTTP code)
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pipeline",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests handled",
	}, []string{"method", "route", "status"})

	// HTTPDuration measures request latency.
	// Labels: method, route
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pipeline",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"method", "route"})

	// StoreQueryDuration measures record store calls.
	// Labels: op (find, count, aggregate, ...), result (ok, not_found, timeout, error)
	StoreQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pipeline",
		Subsystem: "store",
		Name:      "query_duration_seconds",
		Help:      "Record store query latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 5},
	}, []string{"op", "result"})

	// StatusTransitions counts setStatus calls by target status.
	// Labels: to
	StatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pipeline",
		Subsystem: "workflow",
		Name:      "status_transitions_total",
		Help:      "Total status transitions applied",
	}, []string{"to"})

	// RateLimited counts rejected requests.
	// Labels: backend (redis, memory)
	RateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pipeline",
		Subsystem: "http",
		Name:      "rate_limited_total",
		Help:      "Total requests rejected by the rate limiter",
	}, []string{"backend"})
)

// ObserveStore records one store call started at start
func ObserveStore(op, result string, start time.Time) {
	StoreQueryDuration.WithLabelValues(op, result).Observe(time.Since(start).Seconds())
}
