// Package metrics provides Prometheus metrics for the resume guidance service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace      string
	subsystem      string
	latencyBuckets []float64
	scoreBuckets   []float64
	registry       prometheus.Registerer

	// Core business metrics
	scoreRequests    prometheus.Counter
	scoreValue       prometheus.Histogram
	scoringLatency   prometheus.Histogram
	recommendations  *prometheus.CounterVec
	missingSkills    prometheus.Histogram
	unknownRoles     prometheus.Counter
	reportsGenerated prometheus.Counter
	catalogRoles     prometheus.Gauge

	// Batch ranking
	rankBatchSize prometheus.Histogram
	rankLatency   prometheus.Histogram

	// Document extraction
	extractions *prometheus.CounterVec
	extractSize prometheus.Histogram

	// HTTP performance
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpInFlight        prometheus.Gauge

	// Error tracking
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System performance
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegisterer(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:      "resumeguide",
		subsystem:      "engine",
		latencyBuckets: prometheus.DefBuckets,
		scoreBuckets:   prometheus.LinearBuckets(10, 10, 10),
		registry:       prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one block per metric
	auto := promauto.With(m.registry)

	m.scoreRequests = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score_requests_total",
		Help:      "Total number of resume/job description comparisons",
	})

	m.scoreValue = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score_percent",
		Help:      "Distribution of match scores (0-100)",
		Buckets:   m.scoreBuckets,
	})

	m.scoringLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_latency_milliseconds",
		Help:      "Histogram of scoring latency in milliseconds",
		Buckets:   m.latencyBuckets,
	})

	m.recommendations = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "recommendations_total",
			Help:      "Total number of skill recommendations by role",
		},
		[]string{"role"},
	)

	m.missingSkills = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "missing_skills",
		Help:      "Number of missing skills per recommendation",
		Buckets:   prometheus.LinearBuckets(0, 1, 8),
	})

	m.unknownRoles = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "unknown_role_total",
		Help:      "Total number of requests for a role outside the catalog",
	})

	m.reportsGenerated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reports_total",
		Help:      "Total number of resume reports generated",
	})

	m.catalogRoles = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_roles",
		Help:      "Number of roles in the loaded skill catalog",
	})

	m.rankBatchSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rank_batch_size",
		Help:      "Number of postings per ranking request",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
	})

	m.rankLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rank_latency_milliseconds",
		Help:      "Histogram of batch ranking latency in milliseconds",
		Buckets:   m.latencyBuckets,
	})

	m.extractions = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "extractions_total",
			Help:      "Total number of document extractions by kind and result",
		},
		[]string{"kind", "result"},
	)

	m.extractSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "extract_input_bytes",
		Help:      "Size of uploaded documents in bytes",
		Buckets:   prometheus.ExponentialBuckets(1024, 4, 8),
	})

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
			Buckets:   m.latencyBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpInFlight = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_in_flight_requests",
		Help:      "Number of HTTP requests currently being served",
	})

	m.errorRateByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_component_total",
			Help:      "Total number of errors by component",
		},
		[]string{"component", "error_type"},
	)

	m.errorRateByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_type_total",
			Help:      "Total number of errors by type",
		},
		[]string{"error_type", "severity"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_endpoint_total",
			Help:      "Total number of errors by endpoint",
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "Heap memory in use in bytes",
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
		Help:      "Average GC pause time in milliseconds",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
}

// RecordScore records one comparison with its resulting score and latency.
func RecordScore(score, latencyMs float64) {
	globalManager.scoreRequests.Inc()
	globalManager.scoreValue.Observe(score)
	globalManager.scoringLatency.Observe(latencyMs)
}

// RecordRecommendation records a recommendation for role with the number of missing skills.
func RecordRecommendation(role string, missing int) {
	globalManager.recommendations.WithLabelValues(role).Inc()
	globalManager.missingSkills.Observe(float64(missing))
}

// RecordUnknownRole increments the unknown role counter.
func RecordUnknownRole() {
	globalManager.unknownRoles.Inc()
}

// RecordReport increments the generated reports counter.
func RecordReport() {
	globalManager.reportsGenerated.Inc()
}

// UpdateCatalogRoles sets the number of roles in the loaded catalog.
func UpdateCatalogRoles(count int) {
	globalManager.catalogRoles.Set(float64(count))
}

// RecordRank records a ranking batch.
func RecordRank(size int, latencyMs float64) {
	globalManager.rankBatchSize.Observe(float64(size))
	globalManager.rankLatency.Observe(latencyMs)
}

// RecordExtraction records a document extraction attempt.
func RecordExtraction(kind, result string, size int) {
	globalManager.extractions.WithLabelValues(kind, result).Inc()
	globalManager.extractSize.Observe(float64(size))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// IncHTTPInFlight and DecHTTPInFlight track requests being served.
func IncHTTPInFlight() { globalManager.httpInFlight.Inc() }

// DecHTTPInFlight decrements the in-flight gauge.
func DecHTTPInFlight() { globalManager.httpInFlight.Dec() }

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the heap memory in use in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
