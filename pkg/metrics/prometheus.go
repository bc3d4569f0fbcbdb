// Package metrics provides Prometheus metrics for the deckray analysis service.
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

// Manager manages all Prometheus metrics for the deckray service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Pipeline Metrics - What really matters for an analysis service
	analysesStarted   prometheus.Counter
	analysesCompleted *prometheus.CounterVec
	analysesInFlight  prometheus.Gauge
	analysisDuration  prometheus.Histogram
	stageDuration     *prometheus.HistogramVec
	stageFailures     *prometheus.CounterVec

	// Response Parser Metrics - Which fallback rung rescued the response
	parserRungHits *prometheus.CounterVec

	// LLM Metrics
	llmCalls     prometheus.Counter
	llmErrors    prometheus.Counter
	llmLatency   prometheus.Histogram
	llmEmptyResp prometheus.Counter

	// External Lookup Metrics
	lookupCalls  *prometheus.CounterVec
	lookupErrors *prometheus.CounterVec
	scanTimeouts prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
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
		namespace:        "deckray",
		subsystem:        "analysis",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.analysesStarted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "runs_started_total",
		Help:      "Total number of analysis runs started",
	})

	m.analysesCompleted = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "runs_completed_total",
		Help:      "Total number of analysis runs finished, by terminal status",
	}, []string{"status"})

	m.analysesInFlight = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "runs_in_flight",
		Help:      "Number of analysis runs currently executing",
	})

	m.analysisDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "run_duration_seconds",
		Help:      "Histogram of end-to-end analysis run duration in seconds",
		Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
	})

	m.stageDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stage_duration_seconds",
		Help:      "Histogram of per-stage duration in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
	}, []string{"stage"})

	m.stageFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stage_failures_total",
		Help:      "Total number of stage executions that fell back to a default record",
	}, []string{"stage"})

	m.parserRungHits = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "parser_rung_hits_total",
		Help:      "Total number of model responses recovered, by parser ladder rung",
	}, []string{"rung"})

	m.llmCalls = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "llm_calls_total",
		Help:      "Total number of text-generation calls issued",
	})

	m.llmErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "llm_errors_total",
		Help:      "Total number of text-generation calls that failed",
	})

	m.llmLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "llm_latency_milliseconds",
		Help:      "Histogram of text-generation call latency in milliseconds",
		Buckets:   []float64{100, 250, 500, 1000, 2500, 5000, 10000, 30000, 60000},
	})

	m.llmEmptyResp = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "llm_empty_responses_total",
		Help:      "Total number of text-generation calls that returned no content",
	})

	m.lookupCalls = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "lookup_calls_total",
		Help:      "Total number of external lookup calls, by service",
	}, []string{"service"})

	m.lookupErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "lookup_errors_total",
		Help:      "Total number of external lookup failures, by service",
	}, []string{"service"})

	m.scanTimeouts = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scan_timeouts_total",
		Help:      "Total number of code-quality scans that timed out before completion",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current heap allocation in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})
}

// Package-level helpers operating on the global manager.

// RecordAnalysisStarted increments the started-runs counter and in-flight gauge.
func RecordAnalysisStarted() {
	globalManager.analysesStarted.Inc()
	globalManager.analysesInFlight.Inc()
}

// RecordAnalysisCompleted records a finished run with its terminal status.
func RecordAnalysisCompleted(status string, durationSeconds float64) {
	globalManager.analysesCompleted.WithLabelValues(status).Inc()
	globalManager.analysesInFlight.Dec()
	globalManager.analysisDuration.Observe(durationSeconds)
}

// RecordStageDuration observes the elapsed time of one pipeline stage.
func RecordStageDuration(stage string, durationSeconds float64) {
	globalManager.stageDuration.WithLabelValues(stage).Observe(durationSeconds)
}

// RecordStageFailure counts a stage that degraded to its default record.
func RecordStageFailure(stage string) {
	globalManager.stageFailures.WithLabelValues(stage).Inc()
}

// RecordParserRung counts which ladder rung produced a usable record.
func RecordParserRung(rung string) {
	globalManager.parserRungHits.WithLabelValues(rung).Inc()
}

// RecordLLMCall counts a text-generation call with its latency.
func RecordLLMCall(latencyMs float64) {
	globalManager.llmCalls.Inc()
	globalManager.llmLatency.Observe(latencyMs)
}

// RecordLLMError counts a failed text-generation call.
func RecordLLMError() {
	globalManager.llmErrors.Inc()
}

// RecordLLMEmptyResponse counts a call that returned no content.
func RecordLLMEmptyResponse() {
	globalManager.llmEmptyResp.Inc()
}

// RecordLookup counts an external lookup call for the named service.
func RecordLookup(service string) {
	globalManager.lookupCalls.WithLabelValues(service).Inc()
}

// RecordLookupError counts a failed external lookup for the named service.
func RecordLookupError(service string) {
	globalManager.lookupErrors.WithLabelValues(service).Inc()
}

// RecordScanTimeout counts a code-quality scan that never completed in time.
func RecordScanTimeout() {
	globalManager.scanTimeouts.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// UpdateSystemMemoryUsage updates the heap allocation gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount updates the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
