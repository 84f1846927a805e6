// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring the groqchat service.
package observability

import "github.com/prometheus/client_golang/prometheus"

// LLMBuckets defines histogram buckets suited for LLM inference latencies,
// ranging from 100ms to 120s.
var LLMBuckets = []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}

var (
	// RequestsTotal counts all HTTP requests by method, path, and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "groqchat_requests_total",
			Help: "Total requests",
		},
		[]string{"method", "path", "status"},
	)

	// RequestDuration records HTTP request duration in seconds by method and path.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "groqchat_request_duration_seconds",
			Help:    "Request duration",
			Buckets: LLMBuckets,
		},
		[]string{"method", "path"},
	)

	// ValidationFailuresTotal counts rejected chat requests by field and reason.
	ValidationFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "groqchat_validation_failures_total",
			Help: "Validation failures",
		},
		[]string{"field", "reason"},
	)

	// ProviderRequestsTotal counts completion calls sent to the backend.
	ProviderRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "groqchat_provider_requests_total",
			Help: "Provider requests",
		},
		[]string{"provider", "model", "status"},
	)

	// ProviderLatency records backend completion latency in seconds.
	ProviderLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "groqchat_provider_latency_seconds",
			Help:    "Provider latency",
			Buckets: LLMBuckets,
		},
		[]string{"provider", "model"},
	)

	// TokensUsedTotal counts tokens reported (or estimated) per completion.
	TokensUsedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "groqchat_tokens_used_total",
			Help: "Token count",
		},
		[]string{"provider", "model"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		ValidationFailuresTotal,
		ProviderRequestsTotal,
		ProviderLatency,
		TokensUsedTotal,
	)
}
