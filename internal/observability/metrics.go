// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Upstream metrics
	UpstreamCalls   *prometheus.CounterVec
	UpstreamLatency *prometheus.HistogramVec

	// Cache and rate limiting
	CacheLookups     *prometheus.CounterVec
	RateLimitDenials *prometheus.CounterVec
	StoreErrors      *prometheus.CounterVec

	// Check metrics
	ChecksTotal   *prometheus.CounterVec
	CheckDuration prometheus.Histogram
	RiskLevels    *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "address_checker"
	}

	return &Metrics{
		UpstreamCalls: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "calls_total",
			Help:      "Total number of upstream fetches by source and outcome",
		}, []string{"source", "outcome"}),
		UpstreamLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "latency_seconds",
			Help:      "Upstream network call latency in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"source"}),

		CacheLookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Response cache lookups by result",
		}, []string{"source", "result"}),
		RateLimitDenials: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ratelimit",
			Name:      "denials_total",
			Help:      "Outbound calls denied by the rate limiter",
		}, []string{"host"}),
		StoreErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "errors_total",
			Help:      "Shared store errors by component",
		}, []string{"component"}),

		ChecksTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "check",
			Name:      "total",
			Help:      "Address checks by terminal state",
		}, []string{"state"}),
		CheckDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "check",
			Name:      "duration_seconds",
			Help:      "End-to-end address check duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 20, 30, 60},
		}),
		RiskLevels: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "check",
			Name:      "risk_level_total",
			Help:      "Successful checks by computed risk level",
		}, []string{"level"}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordUpstreamCall records the outcome of one upstream fetch.
func RecordUpstreamCall(source, outcome string) {
	DefaultMetrics.UpstreamCalls.WithLabelValues(source, outcome).Inc()
}

// RecordUpstreamLatency records network latency for an upstream call.
func RecordUpstreamLatency(source string, seconds float64) {
	DefaultMetrics.UpstreamLatency.WithLabelValues(source).Observe(seconds)
}

// RecordCacheLookup records a cache hit or miss.
func RecordCacheLookup(source string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	DefaultMetrics.CacheLookups.WithLabelValues(source, result).Inc()
}

// RecordRateLimitDenial increments the denial counter for host.
func RecordRateLimitDenial(host string) {
	DefaultMetrics.RateLimitDenials.WithLabelValues(host).Inc()
}

// RecordStoreError increments the store error counter.
func RecordStoreError(component string) {
	DefaultMetrics.StoreErrors.WithLabelValues(component).Inc()
}

// RecordCheck records a finished address check.
func RecordCheck(state string, durationSeconds float64) {
	DefaultMetrics.ChecksTotal.WithLabelValues(state).Inc()
	DefaultMetrics.CheckDuration.Observe(durationSeconds)
}

// RecordRiskLevel records the risk level of a successful check.
func RecordRiskLevel(level string) {
	DefaultMetrics.RiskLevels.WithLabelValues(level).Inc()
}
