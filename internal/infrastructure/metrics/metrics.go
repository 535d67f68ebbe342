package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "converse",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "converse",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Outbound provider calls
	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "converse",
			Subsystem: "api",
			Name:      "provider_requests_total",
			Help:      "Total outbound provider calls",
		},
		[]string{"provider", "status"},
	)

	ProviderLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "converse",
			Subsystem: "api",
			Name:      "provider_latency_seconds",
			Help:      "Outbound provider call latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"provider"},
	)
)

// RecordRequest records an HTTP request after it completes.
func RecordRequest(method, endpoint, status string, durationSeconds float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSeconds)
}

// RecordProviderRequest records an outbound provider call.
func RecordProviderRequest(provider, status string, durationSeconds float64) {
	ProviderRequestsTotal.WithLabelValues(provider, status).Inc()
	ProviderLatency.WithLabelValues(provider).Observe(durationSeconds)
}
