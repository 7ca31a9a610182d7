package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the client core
type Metrics struct {
	registry *prometheus.Registry

	// Protocol metrics
	OperationsTotal   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	RequestSize       *prometheus.HistogramVec

	// Media metrics
	MediaItems    *prometheus.CounterVec
	MediaDuration *prometheus.HistogramVec

	// Vault metrics
	VaultOps *prometheus.CounterVec

	// Session metrics
	Authenticated prometheus.Gauge

	// Snapshot for status output - track current values
	snapshot Snapshot

	mu sync.RWMutex
}

// Snapshot holds current metric values for status output
type Snapshot struct {
	TotalOperations int64
	TotalErrors     int64
	TotalDuration   float64 // sum of all operation durations
}

// NewMetrics creates a metrics collector bound to its own registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		OperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pattern_core_operations_total",
				Help: "Total number of protocol operations by outcome",
			},
			[]string{"operation", "outcome"},
		),
		OperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pattern_core_operation_duration_seconds",
				Help:    "Protocol operation round-trip duration in seconds",
				Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"operation"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pattern_core_request_size_bytes",
				Help:    "Protocol request body size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"operation"},
		),

		MediaItems: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pattern_core_media_items_total",
				Help: "Images transcoded by direction and outcome",
			},
			[]string{"direction", "outcome"},
		),
		MediaDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pattern_core_media_duration_seconds",
				Help:    "Image transcode duration in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"direction"},
		),

		VaultOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pattern_core_vault_operations_total",
				Help: "Credential vault operations by kind and outcome",
			},
			[]string{"op", "outcome"},
		),

		Authenticated: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "pattern_core_authenticated",
				Help: "1 when a credential is held in memory",
			},
		),
	}
}

// Registry exposes the registry for a host that wants to serve or gather it
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordOperation records a finished protocol operation
func (m *Metrics) RecordOperation(operation, outcome string, duration time.Duration, reqSize int) {
	if m == nil {
		return
	}
	m.OperationsTotal.WithLabelValues(operation, outcome).Inc()
	m.OperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(operation).Observe(float64(reqSize))

	m.mu.Lock()
	m.snapshot.TotalOperations++
	m.snapshot.TotalDuration += duration.Seconds()
	if outcome != "ok" {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordMedia records one image passing through the codec
func (m *Metrics) RecordMedia(direction, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.MediaItems.WithLabelValues(direction, outcome).Inc()
	m.MediaDuration.WithLabelValues(direction).Observe(duration.Seconds())
}

// RecordVault records a vault primitive
func (m *Metrics) RecordVault(op, outcome string) {
	if m == nil {
		return
	}
	m.VaultOps.WithLabelValues(op, outcome).Inc()
}

// SetAuthenticated mirrors the in-memory authentication flag
func (m *Metrics) SetAuthenticated(authenticated bool) {
	if m == nil {
		return
	}
	if authenticated {
		m.Authenticated.Set(1)
	} else {
		m.Authenticated.Set(0)
	}
}

// Snapshot returns a copy of the running totals
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}
