package monitoring

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordOperation(t *testing.T) {
	m := NewMetrics()

	m.RecordOperation("login", "ok", 20*time.Millisecond, 64)
	m.RecordOperation("login", "graphql", 10*time.Millisecond, 64)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.OperationsTotal.WithLabelValues("login", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OperationsTotal.WithLabelValues("login", "graphql")))

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.TotalOperations)
	assert.Equal(t, int64(1), snap.TotalErrors)
	assert.InDelta(t, 0.03, snap.TotalDuration, 1e-9)
}

func TestIndependentRegistries(t *testing.T) {
	// Two collectors must not collide on registration.
	a := NewMetrics()
	b := NewMetrics()

	a.RecordVault("save", "ok")

	families, err := a.Registry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
	assert.Equal(t, 0.0, testutil.ToFloat64(b.VaultOps.WithLabelValues("save", "ok")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordOperation("x", "ok", time.Second, 1)
	m.RecordMedia("encode", "ok", time.Second)
	m.RecordVault("load", "absent")
	m.SetAuthenticated(true)
	assert.Equal(t, Snapshot{}, m.Snapshot())
}

func TestSetAuthenticated(t *testing.T) {
	m := NewMetrics()
	m.SetAuthenticated(true)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Authenticated))
	m.SetAuthenticated(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Authenticated))
}
