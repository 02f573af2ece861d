// Package metrics provides Prometheus metrics for the BunriGo service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Core business metrics
	submissions     prometheus.Counter
	studentsCreated prometheus.Counter
	awardsGranted   prometheus.Counter
	pointsAwarded   prometheus.Counter
	duplicateTokens prometheus.Counter
	classifications *prometheus.CounterVec

	// Record store metrics
	recordCount      prometheus.Gauge
	storeLoadLatency prometheus.Histogram
	storeSaveLatency prometheus.Histogram
	storeErrors      *prometheus.CounterVec

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System performance metrics
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
		namespace:        "bunrigo",
		subsystem:        "recycle",
		histogramBuckets: prometheus.DefBuckets,
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
	auto := promauto.With(m.registry)

	m.submissions = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submissions_total",
		Help:      "Total number of student id submissions handled",
	})

	m.studentsCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "students_created_total",
		Help:      "Total number of new student records created",
	})

	m.awardsGranted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "awards_granted_total",
		Help:      "Total number of successful correct-bin awards",
	})

	m.pointsAwarded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "points_awarded_total",
		Help:      "Total points added to student scores",
	})

	m.duplicateTokens = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "award_tokens_duplicate_total",
		Help:      "Total number of replayed award tokens rejected (indicates client retries)",
	})

	m.classifications = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "classifications_total",
		Help:      "Classification attempts by capture stage and outcome",
	}, []string{"stage", "outcome"})

	m.recordCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records",
		Help:      "Number of student records in the persisted set",
	})

	m.storeLoadLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_load_duration_seconds",
		Help:      "Histogram of record set load latency",
		Buckets:   m.histogramBuckets,
	})

	m.storeSaveLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_save_duration_seconds",
		Help:      "Histogram of record set save latency",
		Buckets:   m.histogramBuckets,
	})

	m.storeErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_errors_total",
		Help:      "Record store failures by operation",
	}, []string{"operation"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_seconds",
		Help:      "Histogram of HTTP request latency by endpoint, method and status code",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current allocated memory in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})
}

// GetRegistry returns the registry backing the global manager, for promhttp.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers delegating to the global manager.

// RecordSubmission counts one handled student id submission.
func RecordSubmission() { globalManager.submissions.Inc() }

// RecordStudentCreated counts one newly created student record.
func RecordStudentCreated() { globalManager.studentsCreated.Inc() }

// RecordAward counts one successful award and its points.
func RecordAward(points int) {
	globalManager.awardsGranted.Inc()
	globalManager.pointsAwarded.Add(float64(points))
}

// RecordDuplicateToken counts one replayed award token.
func RecordDuplicateToken() { globalManager.duplicateTokens.Inc() }

// RecordClassification counts one classification attempt outcome.
func RecordClassification(stage, outcome string) {
	globalManager.classifications.WithLabelValues(stage, outcome).Inc()
}

// UpdateRecordCount sets the persisted record count gauge.
func UpdateRecordCount(n int) { globalManager.recordCount.Set(float64(n)) }

// TimeStoreLoad starts timing a store load; call the returned func when done.
func TimeStoreLoad() func() {
	start := time.Now()
	return func() { globalManager.storeLoadLatency.Observe(time.Since(start).Seconds()) }
}

// TimeStoreSave starts timing a store save; call the returned func when done.
func TimeStoreSave() func() {
	start := time.Now()
	return func() { globalManager.storeSaveLatency.Observe(time.Since(start).Seconds()) }
}

// RecordStoreError counts one store failure for the given operation.
func RecordStoreError(operation string) {
	globalManager.storeErrors.WithLabelValues(operation).Inc()
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration observes one HTTP request latency.
func RecordHTTPRequestDuration(endpoint, method, status string, seconds float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(seconds)
}

// UpdateSystemMemoryUsage sets the allocated-memory gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(n int) {
	globalManager.systemGoroutineCount.Set(float64(n))
}
