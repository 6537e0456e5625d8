// Package metrics provides Prometheus metrics for the RFV segmentation service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus metric the service exposes.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Pipeline metrics - the upload/parse/score path
	uploadsTotal     prometheus.Counter
	uploadFailures   *prometheus.CounterVec
	duplicateUploads prometheus.Counter
	rowsParsed       prometheus.Counter
	parseDuration    prometheus.Histogram
	scoringDuration  prometheus.Histogram
	customersScored  prometheus.Counter
	exportsTotal     *prometheus.CounterVec
	exportDuration   prometheus.Histogram

	// Session state gauges
	datasetsLive  prometheus.Gauge
	customersLive prometheus.Gauge
	recallEntries prometheus.Gauge

	// Store housekeeping
	storeEvictions   prometheus.Counter
	storeExpirations prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec
	errorsByType        *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global manager on a private registry so the default Go collectors stay out.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // backing registry for the singleton

func init() { //nolint:gochecknoinits // wire the singleton at load time
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers every metric.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "rfv",
		subsystem:        "segmentation",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one declaration per metric
	auto := promauto.With(m.registry)

	m.uploadsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "uploads_total",
		Help:      "Total number of dataset uploads accepted and scored",
	})

	m.uploadFailures = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "upload_failures_total",
			Help:      "Total number of rejected uploads by pipeline stage",
		},
		[]string{"stage"},
	)

	m.duplicateUploads = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duplicate_uploads_total",
		Help:      "Total number of uploads answered from the content-hash recall cache",
	})

	m.rowsParsed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_parsed_total",
		Help:      "Total number of transaction rows parsed from uploads",
	})

	m.parseDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "parse_duration_milliseconds",
		Help:      "File parse duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.scoringDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_duration_milliseconds",
		Help:      "Metric computation plus quartile scoring duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.customersScored = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "customers_scored_total",
		Help:      "Total number of customers assigned an RFV score",
	})

	m.exportsTotal = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "exports_total",
			Help:      "Total number of exports served by format",
		},
		[]string{"format"},
	)

	m.exportDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "export_duration_milliseconds",
		Help:      "Export serialization duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.datasetsLive = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "datasets_live",
		Help:      "Number of datasets currently held in the session store",
	})

	m.customersLive = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "customers_live",
		Help:      "Number of scored customers across all live datasets",
	})

	m.recallEntries = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recall_entries",
		Help:      "Number of entries in the upload recall cache",
	})

	m.storeEvictions = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_evictions_total",
		Help:      "Total number of datasets evicted to make room for new uploads",
	})

	m.storeExpirations = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_expirations_total",
		Help:      "Total number of datasets dropped after their TTL elapsed",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint, method, and status",
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

	m.errorsByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_endpoint_total",
			Help:      "Total number of error responses by endpoint",
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
			Help:      "Latency of operations that ended in an error",
			Buckets:   m.histogramBuckets,
		},
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "Process heap allocation in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_time_milliseconds",
		Help:      "GC pause time in milliseconds",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
}

// Pipeline metric helpers.

// RecordUpload increments the accepted uploads counter.
func RecordUpload() {
	globalManager.uploadsTotal.Inc()
}

// RecordUploadFailure increments the rejected uploads counter for a stage.
func RecordUploadFailure(stage string) {
	globalManager.uploadFailures.WithLabelValues(stage).Inc()
}

// RecordDuplicateUpload increments the recall-cache hit counter.
func RecordDuplicateUpload() {
	globalManager.duplicateUploads.Inc()
}

// RecordRowsParsed adds n to the parsed rows counter.
func RecordRowsParsed(n int) {
	globalManager.rowsParsed.Add(float64(n))
}

// RecordParseDuration records file parse duration in milliseconds.
func RecordParseDuration(ms float64) {
	globalManager.parseDuration.Observe(ms)
}

// RecordScoringDuration records scoring duration in milliseconds.
func RecordScoringDuration(ms float64) {
	globalManager.scoringDuration.Observe(ms)
}

// RecordCustomersScored adds n to the scored customers counter.
func RecordCustomersScored(n int) {
	globalManager.customersScored.Add(float64(n))
}

// RecordExport increments the exports counter for a format.
func RecordExport(format string) {
	globalManager.exportsTotal.WithLabelValues(format).Inc()
}

// RecordExportDuration records export serialization duration in milliseconds.
func RecordExportDuration(ms float64) {
	globalManager.exportDuration.Observe(ms)
}

// Session state helpers.

// UpdateDatasetsLive sets the live dataset gauge.
func UpdateDatasetsLive(n int) {
	globalManager.datasetsLive.Set(float64(n))
}

// UpdateCustomersLive sets the live customers gauge.
func UpdateCustomersLive(n int) {
	globalManager.customersLive.Set(float64(n))
}

// UpdateRecallEntries sets the recall cache size gauge.
func UpdateRecallEntries(n int64) {
	globalManager.recallEntries.Set(float64(n))
}

// RecordStoreEviction increments the capacity eviction counter.
func RecordStoreEviction() {
	globalManager.storeEvictions.Inc()
}

// RecordStoreExpiration increments the TTL expiration counter.
func RecordStoreExpiration() {
	globalManager.storeExpirations.Inc()
}

// HTTP metric helpers.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(ms)
}

// RecordErrorByEndpoint records an error response by endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorsByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorLatency records the latency of an operation that failed.
func RecordErrorLatency(component, errorType string, ms float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(ms)
}

// System metric helpers.

// UpdateSystemMemoryUsage sets the heap allocation gauge in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the private registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
