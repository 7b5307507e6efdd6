// Package metrics provides Prometheus metrics for the prospect board service.
package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Roster cache
	cacheHits          prometheus.Counter
	cacheMisses        prometheus.Counter
	rosterRefreshes    prometheus.Counter
	rosterRefreshTime  prometheus.Histogram
	rosterRefreshErrs  *prometheus.CounterVec
	staleServes        prometheus.Counter
	validationFailures *prometheus.CounterVec
	rosterSize         prometheus.Gauge
	rosterLastRefresh  prometheus.Gauge
	snapshotAge        prometheus.Gauge
	prospectsByLevel   *prometheus.GaugeVec
	prospectsByKind    *prometheus.GaugeVec

	// Derived statistics
	derivationLatency *prometheus.HistogramVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var (
	globalMu       sync.RWMutex
	globalManager  *Manager
	customRegistry *prometheus.Registry
)

func init() { //nolint:gochecknoinits // metrics must be usable before main configures them
	customRegistry = prometheus.NewRegistry()
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// Init replaces the global manager with one built from opts on a fresh
// registry. It is meant to be called once at startup.
func Init(opts ...Option) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInit, r)
		}
	}()
	registry := prometheus.NewRegistry()
	m := NewManager(append(opts, WithPrometheusRegistry(registry))...)

	globalMu.Lock()
	customRegistry = registry
	globalManager = m
	globalMu.Unlock()
	return nil
}

func current() *Manager {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalManager
}

// NewManager creates a new metrics manager. Collectors are registered on the
// configured registry, prometheus.DefaultRegisterer unless overridden.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "prospectboard",
		subsystem:        "roster",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) gauge(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) histogram(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: m.histogramBuckets, ConstLabels: m.constLabels}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.cacheHits = auto.NewCounter(m.counter("cache_hits_total", "Roster requests served from the cached snapshot"))
	m.cacheMisses = auto.NewCounter(m.counter("cache_misses_total", "Roster requests that found no fresh snapshot"))
	m.rosterRefreshes = auto.NewCounter(m.counter("refreshes_total", "Successful roster reloads from the source"))
	m.rosterRefreshTime = auto.NewHistogram(m.histogram("refresh_duration_milliseconds", "Roster reload duration in milliseconds"))
	m.rosterRefreshErrs = auto.NewCounterVec(m.counter("refresh_errors_total", "Failed roster reloads by reason"), []string{"reason"})
	m.staleServes = auto.NewCounter(m.counter("stale_serves_total", "Requests answered with the last good snapshot after a failed reload"))
	m.validationFailures = auto.NewCounterVec(m.counter("validation_failures_total", "Roster loads rejected by record validation"), []string{"field"})
	m.rosterSize = auto.NewGauge(m.gauge("prospects", "Prospects in the current snapshot"))
	m.rosterLastRefresh = auto.NewGauge(m.gauge("last_refresh_unixtime", "Unix time the current snapshot was produced"))
	m.snapshotAge = auto.NewGauge(m.gauge("snapshot_age_seconds", "Age of the current snapshot in seconds"))
	m.prospectsByLevel = auto.NewGaugeVec(m.gauge("prospects_by_level", "Prospects in the current snapshot by level"), []string{"level"})
	m.prospectsByKind = auto.NewGaugeVec(m.gauge("prospects_by_kind", "Prospects in the current snapshot by kind"), []string{"kind"})

	m.derivationLatency = auto.NewHistogramVec(m.histogram("derivation_duration_milliseconds", "Time spent deriving statistics from a snapshot"), []string{"view"})

	m.httpRequests = auto.NewCounterVec(m.counter("http_requests_total", "HTTP requests by endpoint and method"), []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogram("http_request_duration_milliseconds", "HTTP request duration in milliseconds"), []string{"endpoint", "method", "status_code"})

	m.errorRateByComponent = auto.NewCounterVec(m.counter("errors_by_component_total", "Errors by component and type"), []string{"component", "error_type"})
	m.errorRateByType = auto.NewCounterVec(m.counter("errors_by_type_total", "Errors by type and severity"), []string{"error_type", "severity"})
	m.errorRateByEndpoint = auto.NewCounterVec(m.counter("errors_by_endpoint_total", "Errors by endpoint"), []string{"endpoint", "method", "error_type"})
	m.errorLatency = auto.NewHistogramVec(m.histogram("error_latency_milliseconds", "Latency of operations that ended in an error"), []string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(m.gauge("system_memory_bytes", "Allocated heap bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gauge("system_goroutines", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogram("system_gc_pause_milliseconds", "Average GC pause in milliseconds"))
}

// with runs fn against the global manager when metrics are enabled.
func with(fn func(m *Manager)) {
	if m := current(); m != nil && m.enabled {
		fn(m)
	}
}

// Roster cache metrics.

// RecordCacheHit counts a roster request served from cache.
func RecordCacheHit() { with(func(m *Manager) { m.cacheHits.Inc() }) }

// RecordCacheMiss counts a roster request that required a reload.
func RecordCacheMiss() { with(func(m *Manager) { m.cacheMisses.Inc() }) }

// RecordRosterRefresh records a successful reload and its duration.
func RecordRosterRefresh(latencyMs float64) {
	with(func(m *Manager) {
		m.rosterRefreshes.Inc()
		m.rosterRefreshTime.Observe(latencyMs)
	})
}

// RecordRosterRefreshError counts a failed reload.
func RecordRosterRefreshError(reason string) {
	with(func(m *Manager) {
		m.rosterRefreshErrs.WithLabelValues(reason).Inc()
		m.errorRateByComponent.WithLabelValues("roster_cache", reason).Inc()
	})
}

// RecordStaleServe counts a request answered with the last good snapshot.
func RecordStaleServe() { with(func(m *Manager) { m.staleServes.Inc() }) }

// RecordValidationFailure counts a load rejected on field.
func RecordValidationFailure(field string) {
	with(func(m *Manager) { m.validationFailures.WithLabelValues(field).Inc() })
}

// UpdateRosterSize sets the number of prospects in the current snapshot.
func UpdateRosterSize(n int) { with(func(m *Manager) { m.rosterSize.Set(float64(n)) }) }

// UpdateRosterLastRefresh sets the production time of the current snapshot.
func UpdateRosterLastRefresh(t time.Time) {
	with(func(m *Manager) { m.rosterLastRefresh.Set(float64(t.Unix())) })
}

// UpdateSnapshotAge sets the age of the current snapshot.
func UpdateSnapshotAge(age time.Duration) {
	with(func(m *Manager) { m.snapshotAge.Set(age.Seconds()) })
}

// UpdateProspectsByLevel sets the prospect count for a level.
func UpdateProspectsByLevel(level string, n int) {
	with(func(m *Manager) { m.prospectsByLevel.WithLabelValues(level).Set(float64(n)) })
}

// UpdateProspectsByKind sets the prospect count for a kind.
func UpdateProspectsByKind(kind string, n int) {
	with(func(m *Manager) { m.prospectsByKind.WithLabelValues(kind).Set(float64(n)) })
}

// RecordDerivation records how long deriving a view took.
func RecordDerivation(view string, latencyMs float64) {
	with(func(m *Manager) { m.derivationLatency.WithLabelValues(view).Observe(latencyMs) })
}

// HTTP metrics.

// RecordHTTPRequest increments the request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	with(func(m *Manager) { m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc() })
}

// RecordHTTPRequestDuration records request latency.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	with(func(m *Manager) {
		m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
	})
}

// Error metrics.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	with(func(m *Manager) { m.errorRateByComponent.WithLabelValues(component, errorType).Inc() })
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	with(func(m *Manager) { m.errorRateByType.WithLabelValues(errorType, severity).Inc() })
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	with(func(m *Manager) { m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc() })
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	with(func(m *Manager) { m.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs) })
}

// System metrics.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	with(func(m *Manager) { m.systemMemoryUsage.Set(float64(bytes)) })
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	with(func(m *Manager) { m.systemGoroutineCount.Set(float64(count)) })
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	with(func(m *Manager) { m.systemGCPauseTime.Observe(pauseMs) })
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return customRegistry
}
