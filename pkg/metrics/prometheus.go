package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Matching operations used as label values.
const (
	OpRank    = "rank"
	OpPreview = "preview"
	OpCurate  = "curate"
	OpExplain = "explain"
	OpBatch   = "batch"
)

// Outcomes used as label values.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var scoreBuckets = []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100} //nolint:gochecknoglobals // fixed bucket layout

// Latency histograms observe milliseconds: 0.5ms up to roughly 4s.
var latencyBuckets = prometheus.ExponentialBuckets(0.5, 2, 14) //nolint:gochecknoglobals // fixed bucket layout

// Manager manages all Prometheus metrics for the stylematch service.
type Manager struct {
	namespace      string
	subsystem      string
	latencyBuckets []float64
	constLabels    prometheus.Labels
	registry       prometheus.Registerer

	// Matching
	matchRequests     *prometheus.CounterVec
	matchLatency      *prometheus.HistogramVec
	candidatesScored  prometheus.Counter
	qualifyingMatches prometheus.Histogram
	matchScores       prometheus.Histogram
	collectionSize    prometheus.Histogram

	// Curation
	curationsRelaxed      prometheus.Counter
	curationsBelowMinimum prometheus.Counter
	batchInFlight         prometheus.Gauge

	// Profile cache
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
	cacheErrors prometheus.Counter

	// Catalog
	catalogUsers prometheus.Gauge
	catalogItems prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	errorRateByComponent *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:      "stylematch",
		subsystem:      "matching",
		latencyBuckets: latencyBuckets,
		constLabels:    prometheus.Labels{},
		registry:       prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.matchRequests = auto.NewCounterVec(
		m.counterOpts("requests_total", "Matching requests by operation and outcome"),
		[]string{"operation", "outcome"},
	)
	m.matchLatency = auto.NewHistogramVec(
		m.histogramOpts("latency_milliseconds", "Matching latency in milliseconds by operation", m.latencyBuckets),
		[]string{"operation"},
	)
	m.candidatesScored = auto.NewCounter(
		m.counterOpts("candidates_scored_total", "Candidate items scored"),
	)
	m.qualifyingMatches = auto.NewHistogram(
		m.histogramOpts("qualifying_matches", "Items at or above the minimum score per request",
			prometheus.ExponentialBuckets(1, 2, 12)),
	)
	m.matchScores = auto.NewHistogram(
		m.histogramOpts("average_score", "Average qualifying score per request", scoreBuckets),
	)

	m.collectionSize = auto.NewHistogram(
		m.histogramOpts("collection_size", "Items per curated collection", prometheus.LinearBuckets(0, 4, 10)),
	)
	m.curationsRelaxed = auto.NewCounter(
		m.counterOpts("curations_relaxed_total", "Curated collections that exceeded diversity caps"),
	)
	m.curationsBelowMinimum = auto.NewCounter(
		m.counterOpts("curations_below_minimum_total", "Curations whose candidate pool was below the minimum size"),
	)
	m.batchInFlight = auto.NewGauge(
		m.gaugeOpts("batch_curations_in_flight", "Curations currently running inside batch requests"),
	)

	m.cacheHits = auto.NewCounter(m.counterOpts("profile_cache_hits_total", "Profile cache hits"))
	m.cacheMisses = auto.NewCounter(m.counterOpts("profile_cache_misses_total", "Profile cache misses"))
	m.cacheErrors = auto.NewCounter(m.counterOpts("profile_cache_errors_total", "Profile cache failures bypassed"))

	m.catalogUsers = auto.NewGauge(m.gaugeOpts("catalog_users", "Users held by the in-memory catalog"))
	m.catalogItems = auto.NewGauge(m.gaugeOpts("catalog_items", "Items held by the in-memory catalog"))

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.latencyBuckets),
		[]string{"endpoint", "method", "status_code"},
	)
	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_total", "Errors by component and type"),
		[]string{"component", "error_type"},
	)
}

// Matching Metrics Functions.

// RecordMatchRequest counts a matching request and observes its latency.
func RecordMatchRequest(operation, outcome string, latencyMs float64) {
	globalManager.matchRequests.WithLabelValues(operation, outcome).Inc()
	globalManager.matchLatency.WithLabelValues(operation).Observe(latencyMs)
}

// RecordMatchResult records the size and average score of a ranked pool.
func RecordMatchResult(candidates, qualifying int, averageScore float64) {
	globalManager.candidatesScored.Add(float64(candidates))
	globalManager.qualifyingMatches.Observe(float64(qualifying))
	if qualifying > 0 {
		globalManager.matchScores.Observe(averageScore)
	}
}

// RecordCollection records the size of a curated collection and whether its
// diversity caps were relaxed.
func RecordCollection(size int, relaxed bool) {
	globalManager.collectionSize.Observe(float64(size))
	if relaxed {
		globalManager.curationsRelaxed.Inc()
	}
}

// RecordCurationBelowMinimum counts a curation returned without arrangement.
func RecordCurationBelowMinimum() {
	globalManager.curationsBelowMinimum.Inc()
}

// AddBatchInFlight adjusts the in-flight batch curation gauge by delta.
func AddBatchInFlight(delta int) {
	globalManager.batchInFlight.Add(float64(delta))
}

// Cache Metrics Functions.

// RecordCacheHit increments the profile cache hit counter.
func RecordCacheHit() {
	globalManager.cacheHits.Inc()
}

// RecordCacheMiss increments the profile cache miss counter.
func RecordCacheMiss() {
	globalManager.cacheMisses.Inc()
}

// RecordCacheError increments the profile cache error counter.
func RecordCacheError() {
	globalManager.cacheErrors.Inc()
}

// UpdateCatalogSize sets the catalog size gauges.
func UpdateCatalogSize(users, items int) {
	globalManager.catalogUsers.Set(float64(users))
	globalManager.catalogItems.Set(float64(items))
}

// HTTP Metrics Functions.

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// Init replaces the global manager with one built from opts on a fresh
// registry. Call it once at startup, before any collector is registered on
// GetRegistry.
func Init(opts ...Option) {
	registry := prometheus.NewRegistry()
	globalManager = NewManager(append(opts, WithPrometheusRegistry(registry))...)
	customRegistry = registry
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
