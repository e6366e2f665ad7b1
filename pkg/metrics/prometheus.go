// Package metrics provides Prometheus metrics for the name preparation
// tools.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager manages all Prometheus metrics for the toolkit.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	enabled          bool
	registry         *prometheus.Registry

	// Record pipeline
	rowsProcessed   prometheus.Counter
	fieldsRecovered *prometheus.CounterVec
	nicknameLookups *prometheus.CounterVec
	runDuration     prometheus.Histogram

	// Nickname table builder
	observationsDropped *prometheus.CounterVec
	buildDuration       prometheus.Histogram
	tableSize           prometheus.Gauge

	// Queue / worker health
	queueSize     prometheus.Gauge
	queueCapacity prometheus.Gauge
	workerCount   prometheus.Gauge
}

// Global metrics manager instance on a custom registry, so the default Go
// collectors never pollute the batch tools' exposition.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager()
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "nameprep",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.rowsProcessed = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "pipeline",
		Name:      "rows_processed_total",
		Help:      "Number of input rows normalized and emitted.",
	})
	m.fieldsRecovered = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "pipeline",
		Name:      "fields_recovered_total",
		Help:      "Unparseable or out-of-range fields recovered to the null marker.",
	}, []string{"field"})
	m.nicknameLookups = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "pipeline",
		Name:      "nickname_lookups_total",
		Help:      "First-word nickname lookups by result.",
	}, []string{"result"})
	m.runDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "pipeline",
		Name:      "run_duration_seconds",
		Help:      "Wall time of a full pipeline run.",
		Buckets:   m.histogramBuckets,
	})

	m.observationsDropped = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "builder",
		Name:      "observations_dropped_total",
		Help:      "Corpus observations dropped, by pipeline stage.",
	}, []string{"stage"})
	m.buildDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "builder",
		Name:      "build_duration_seconds",
		Help:      "Wall time of a nickname table build.",
		Buckets:   m.histogramBuckets,
	})
	m.tableSize = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "builder",
		Name:      "table_size",
		Help:      "Mappings in the most recently built or loaded table.",
	})

	m.queueSize = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "queue",
		Name:      "size",
		Help:      "Rows currently queued for processing.",
	})
	m.queueCapacity = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "queue",
		Name:      "capacity",
		Help:      "Configured queue capacity.",
	})
	m.workerCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "worker",
		Name:      "count",
		Help:      "Configured number of row workers.",
	})
}

// Handler returns an HTTP handler serving the manager's registry.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Package-level helpers against the global manager.

func RecordRowProcessed() {
	if globalManager.enabled {
		globalManager.rowsProcessed.Inc()
	}
}

func RecordFieldRecovered(field string) {
	if globalManager.enabled {
		globalManager.fieldsRecovered.WithLabelValues(field).Inc()
	}
}

func RecordNicknameLookup(result string) {
	if globalManager.enabled {
		globalManager.nicknameLookups.WithLabelValues(result).Inc()
	}
}

func RecordRunDuration(seconds float64) {
	if globalManager.enabled {
		globalManager.runDuration.Observe(seconds)
	}
}

func RecordObservationsDropped(stage string, n int) {
	if globalManager.enabled && n > 0 {
		globalManager.observationsDropped.WithLabelValues(stage).Add(float64(n))
	}
}

func RecordBuildDuration(seconds float64) {
	if globalManager.enabled {
		globalManager.buildDuration.Observe(seconds)
	}
}

func UpdateTableSize(n int) {
	if globalManager.enabled {
		globalManager.tableSize.Set(float64(n))
	}
}

func UpdateQueueSize(n int) {
	if globalManager.enabled {
		globalManager.queueSize.Set(float64(n))
	}
}

func UpdateQueueCapacity(n int) {
	if globalManager.enabled {
		globalManager.queueCapacity.Set(float64(n))
	}
}

func UpdateWorkerCount(n int) {
	if globalManager.enabled {
		globalManager.workerCount.Set(float64(n))
	}
}

// Handler exposes the global registry for the optional metrics endpoint.
func Handler() http.Handler {
	return globalManager.Handler()
}
