// Package metrics provides Prometheus metrics for the NBABrain rating service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Refresh cycle metrics
	refreshes           *prometheus.CounterVec
	sourceFetchDuration *prometheus.HistogramVec
	snapshotBuild       prometheus.Histogram
	snapshotLastUnix    prometheus.Gauge
	snapshotVersions    prometheus.Counter

	// Data quality metrics
	entities          *prometheus.GaugeVec
	duplicateRecords  *prometheus.CounterVec
	inconsistentGames prometheus.Counter
	syntheticHistory  *prometheus.GaugeVec

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Worker Metrics
	workerActive      prometheus.Gauge
	workerTasks       prometheus.Counter
	workerTaskLatency prometheus.Histogram
	workerErrors      prometheus.Counter

	errorsByComponent *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "nbabrain",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		Buckets: m.histogramBuckets,
	}
}

// initializeMetrics creates all the Prometheus metrics on the configured registry.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.refreshes = auto.NewCounterVec(
		m.counterOpts("refreshes_total", "Refresh cycles by source and result"),
		[]string{"source", "result"},
	)
	m.sourceFetchDuration = auto.NewHistogramVec(
		m.histogramOpts("source_fetch_duration_milliseconds", "Time spent fetching a raw snapshot"),
		[]string{"source"},
	)
	m.snapshotBuild = auto.NewHistogram(
		m.histogramOpts("snapshot_build_duration_milliseconds", "Time spent building the view model from a raw snapshot"),
	)
	m.snapshotLastUnix = auto.NewGauge(
		m.gaugeOpts("snapshot_last_unix_seconds", "Unix time of the last published snapshot"),
	)
	m.snapshotVersions = auto.NewCounter(
		m.counterOpts("snapshots_published_total", "Total number of snapshots published"),
	)

	m.entities = auto.NewGaugeVec(
		m.gaugeOpts("entities", "Entities in the current snapshot by kind"),
		[]string{"kind"},
	)
	m.duplicateRecords = auto.NewCounterVec(
		m.counterOpts("duplicate_records_total", "Raw records dropped because their id was already seen"),
		[]string{"kind"},
	)
	m.inconsistentGames = auto.NewCounter(
		m.counterOpts("inconsistent_games_total", "Game rows whose rating delta disagrees with the outcome"),
	)
	m.syntheticHistory = auto.NewGaugeVec(
		m.gaugeOpts("synthetic_histories", "Entities in the current snapshot with a synthesized rating history"),
		[]string{"kind"},
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds"),
		[]string{"endpoint", "method", "status_code"},
	)

	m.workerActive = auto.NewGauge(
		m.gaugeOpts("worker_active_count", "Workers currently running in the fan-out pool"),
	)
	m.workerTasks = auto.NewCounter(
		m.counterOpts("worker_tasks_total", "Tasks completed by the fan-out pool"),
	)
	m.workerTaskLatency = auto.NewHistogram(
		m.histogramOpts("worker_task_latency_milliseconds", "Per-task latency in the fan-out pool"),
	)
	m.workerErrors = auto.NewCounter(
		m.counterOpts("worker_errors_total", "Tasks in the fan-out pool that returned an error"),
	)

	m.errorsByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Errors by component and type"),
		[]string{"component", "error_type"},
	)
}

// RecordRefresh counts one refresh cycle outcome ("ok", "fetch_error", "build_error").
func RecordRefresh(source, result string) {
	globalManager.refreshes.WithLabelValues(source, result).Inc()
}

// RecordSourceFetchDuration records how long a source fetch took.
func RecordSourceFetchDuration(source string, latencyMs float64) {
	globalManager.sourceFetchDuration.WithLabelValues(source).Observe(latencyMs)
}

// RecordSnapshotBuild records the view-model build latency.
func RecordSnapshotBuild(latencyMs float64) {
	globalManager.snapshotBuild.Observe(latencyMs)
}

// RecordSnapshotPublished marks a snapshot publish at unixSeconds.
func RecordSnapshotPublished(unixSeconds int64) {
	globalManager.snapshotLastUnix.Set(float64(unixSeconds))
	globalManager.snapshotVersions.Inc()
}

// UpdateEntityCount sets the entity gauge for kind.
func UpdateEntityCount(kind string, count int) {
	globalManager.entities.WithLabelValues(kind).Set(float64(count))
}

// UpdateSyntheticHistoryCount sets the synthesized-history gauge for kind.
func UpdateSyntheticHistoryCount(kind string, count int) {
	globalManager.syntheticHistory.WithLabelValues(kind).Set(float64(count))
}

// RecordDuplicateRecord counts a dropped duplicate record.
func RecordDuplicateRecord(kind string) {
	globalManager.duplicateRecords.WithLabelValues(kind).Inc()
}

// RecordInconsistentGames adds n inconsistent game rows.
func RecordInconsistentGames(n int) {
	if n > 0 {
		globalManager.inconsistentGames.Add(float64(n))
	}
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// UpdateWorkerActiveCount sets the number of running workers.
func UpdateWorkerActiveCount(count int) {
	globalManager.workerActive.Set(float64(count))
}

// RecordWorkerTask records one completed task and its latency.
func RecordWorkerTask(latencyMs float64) {
	globalManager.workerTasks.Inc()
	globalManager.workerTaskLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() {
	globalManager.workerErrors.Inc()
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
