package vm

import (
	"bytes"
	"testing"

	"github.com/VictoriaMetrics/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorWritesAliasSeries(t *testing.T) {
	set := metrics.NewSet()
	c := New(WithPrefix("app"), WithMetricsSet(set))
	require.Same(t, set, c.Set())

	c.IncSessionCreated("default")
	c.IncSessionReused("default")
	c.IncSessionReused("default")
	c.IncConnectError("audit")
	c.ObserveConnectDuration("default", 0.25)
	c.SetOpenSessions(3)
	c.IncRepositoryCreated("default", "invoice")
	c.IncRepositoryError("audit", "invoice")

	var buf bytes.Buffer
	c.WritePrometheus(&buf)
	out := buf.String()

	assert.Contains(t, out, `app_sessions_created_total{alias="default"} 1`)
	assert.Contains(t, out, `app_sessions_reused_total{alias="default"} 2`)
	assert.Contains(t, out, `app_connect_errors_total{alias="audit"} 1`)
	assert.Contains(t, out, `app_connect_duration_seconds_count{alias="default"} 1`)
	assert.Contains(t, out, `app_open_sessions 3`)
	assert.Contains(t, out, `app_repositories_created_total{alias="default",entity="invoice"} 1`)
	assert.Contains(t, out, `app_repository_errors_total{alias="audit",entity="invoice"} 1`)
}

func TestCollectorDefaultPrefix(t *testing.T) {
	c := New(WithMetricsSet(metrics.NewSet()))
	c.IncSessionCreated("default")

	var buf bytes.Buffer
	c.WritePrometheus(&buf)
	assert.Contains(t, buf.String(), `keyspace_sessions_created_total{alias="default"} 1`)
}
