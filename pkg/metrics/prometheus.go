// Package metrics provides Prometheus metrics for the student results portal.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the portal.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Session lifecycle metrics
	loginSuccess   prometheus.Counter
	loginFailure   prometheus.Counter
	restores       *prometheus.CounterVec
	logouts        prometheus.Counter
	sessionsActive prometheus.Gauge

	// Upstream API metrics
	upstreamRequests        *prometheus.CounterVec
	upstreamRequestDuration *prometheus.HistogramVec

	// Result fetch metrics
	resultFetches     prometheus.Counter
	resultFetchErrors prometheus.Counter
	staleDiscards     prometheus.Counter

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorsByEndpoint *prometheus.CounterVec
	errorsByType     *prometheus.CounterVec
	errorLatency     *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "releves",
		subsystem:        "portal",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Register on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	// Session lifecycle
	m.loginSuccess = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "login_success_total",
		Help:      "Total number of successful logins",
	})

	m.loginFailure = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "login_failure_total",
		Help:      "Total number of rejected or failed logins",
	})

	m.restores = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "session_restores_total",
			Help:      "Total number of session restore cycles by outcome",
		},
		[]string{"outcome"},
	)

	m.logouts = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "logouts_total",
		Help:      "Total number of logouts",
	})

	m.sessionsActive = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "session_authenticated",
		Help:      "Whether the portal currently holds an authenticated session (0 or 1)",
	})

	// Upstream API
	m.upstreamRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "upstream_requests_total",
			Help:      "Total number of requests to the academic records API by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	m.upstreamRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "upstream_request_duration_milliseconds",
			Help:      "Academic records API request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint"},
	)

	// Result fetches
	m.resultFetches = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "result_fetches_total",
		Help:      "Total number of grade result fetches",
	})

	m.resultFetchErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "result_fetch_errors_total",
		Help:      "Total number of failed grade result fetches",
	})

	m.staleDiscards = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stale_results_discarded_total",
		Help:      "Total number of grade responses discarded because the selection moved on",
	})

	// HTTP performance
	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	// Errors
	m.errorsByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_endpoint_total",
			Help:      "Total number of errors by endpoint, method and error type",
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.errorsByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_type_total",
			Help:      "Total number of errors by type and severity",
		},
		[]string{"error_type", "severity"},
	)

	m.errorLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "error_latency_milliseconds",
			Help:      "Latency of failed operations in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"component", "error_type"},
	)
}

// Package-level helper functions for the global manager.

// RecordLoginSuccess increments the successful logins counter.
func RecordLoginSuccess() {
	globalManager.loginSuccess.Inc()
}

// RecordLoginFailure increments the failed logins counter.
func RecordLoginFailure() {
	globalManager.loginFailure.Inc()
}

// RecordRestore records a session restore cycle with its outcome
// (restored, no_token, invalid, unreachable).
func RecordRestore(outcome string) {
	globalManager.restores.WithLabelValues(outcome).Inc()
}

// RecordLogout increments the logouts counter.
func RecordLogout() {
	globalManager.logouts.Inc()
}

// UpdateSessionAuthenticated sets the authenticated-session gauge.
func UpdateSessionAuthenticated(authenticated bool) {
	if authenticated {
		globalManager.sessionsActive.Set(1)
	} else {
		globalManager.sessionsActive.Set(0)
	}
}

// RecordUpstreamRequest records a request to the academic records API.
func RecordUpstreamRequest(endpoint, outcome string) {
	globalManager.upstreamRequests.WithLabelValues(endpoint, outcome).Inc()
}

// RecordUpstreamRequestDuration records upstream request duration in milliseconds.
func RecordUpstreamRequestDuration(endpoint string, durationMs float64) {
	globalManager.upstreamRequestDuration.WithLabelValues(endpoint).Observe(durationMs)
}

// RecordResultFetch increments the result fetches counter.
func RecordResultFetch() {
	globalManager.resultFetches.Inc()
}

// RecordResultFetchError increments the failed result fetches counter.
func RecordResultFetchError() {
	globalManager.resultFetchErrors.Inc()
}

// RecordStaleDiscard increments the discarded stale responses counter.
func RecordStaleDiscard() {
	globalManager.staleDiscards.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByEndpoint records an error for a specific endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorByType records an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorsByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorLatency records the latency of a failed operation.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
