// Package metrics provides Prometheus metrics for the steady recovery
// tracker.
//
// There is no scrape endpoint (the process has no network surface), so
// metrics are exported with WriteToFile using the node-exporter textfile
// collector format.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the steady service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	// Business metrics
	eventsRecorded *prometheus.CounterVec // by event type
	mutations      *prometheus.CounterVec // by operation: append, update, delete, replay

	// Recompute metrics
	recomputePasses   prometheus.Counter
	recomputeDuration prometheus.Histogram

	// Store metrics
	storeUpdateLatency prometheus.Histogram
	storeQueryLatency  prometheus.Histogram
	eventsStored       prometheus.Gauge

	// Current derived state
	score prometheus.Gauge
	level prometheus.Gauge
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the metric namespace.
func WithNamespace(ns string) Option {
	return func(m *Manager) {
		if ns != "" {
			m.namespace = ns
		}
	}
}

// WithSubsystem sets the metric subsystem.
func WithSubsystem(sub string) Option {
	return func(m *Manager) {
		if sub != "" {
			m.subsystem = sub
		}
	}
}

// WithRegistry sets the Prometheus registry metrics are registered on.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(m *Manager) {
		if reg != nil {
			m.registry = reg
		}
	}
}

// WithHistogramBuckets overrides the default latency buckets.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

// Global metrics manager on its own registry, so the default Go runtime
// collectors never leak into the textfile export.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(prometheus.NewRegistry()))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "steady",
		subsystem:        "recovery",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}

	factory := promauto.With(m.registry)

	m.eventsRecorded = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_recorded_total",
		Help:      "Activity events recorded, by event type.",
	}, []string{"type"})

	m.mutations = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "mutations_total",
		Help:      "History mutations applied, by operation.",
	}, []string{"op"})

	m.recomputePasses = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recompute_passes_total",
		Help:      "Full delta recompute passes performed.",
	})

	m.recomputeDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recompute_duration_ms",
		Help:      "Duration of full recompute passes in milliseconds.",
		Buckets:   m.histogramBuckets,
	})

	m.storeUpdateLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_update_latency_ms",
		Help:      "Event store mutation latency in milliseconds.",
		Buckets:   m.histogramBuckets,
	})

	m.storeQueryLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_query_latency_ms",
		Help:      "Event store read latency in milliseconds.",
		Buckets:   m.histogramBuckets,
	})

	m.eventsStored = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_stored",
		Help:      "Events currently held in the store.",
	})

	m.score = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score",
		Help:      "Current aggregate recovery score.",
	})

	m.level = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "level",
		Help:      "Current severity level (1 worst, 6 best).",
	})

	return m
}

// Registry returns the registry this manager registers on.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Manager-level record helpers.

func (m *Manager) RecordEventRecorded(eventType string) { m.eventsRecorded.WithLabelValues(eventType).Inc() }
func (m *Manager) RecordMutation(op string)             { m.mutations.WithLabelValues(op).Inc() }
func (m *Manager) RecordRecomputePass()                 { m.recomputePasses.Inc() }
func (m *Manager) ObserveRecomputeDuration(ms float64)  { m.recomputeDuration.Observe(ms) }
func (m *Manager) RecordStoreUpdateLatency(ms float64)  { m.storeUpdateLatency.Observe(ms) }
func (m *Manager) RecordStoreQueryLatency(ms float64)   { m.storeQueryLatency.Observe(ms) }
func (m *Manager) UpdateEventsStored(n int)             { m.eventsStored.Set(float64(n)) }
func (m *Manager) UpdateScore(score float64)            { m.score.Set(score) }
func (m *Manager) UpdateLevel(level int)                { m.level.Set(float64(level)) }
