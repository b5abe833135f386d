package vm

import (
	"fmt"
	"io"
	"net/http"
	"sync/atomic"

	"github.com/VictoriaMetrics/metrics"

	"github.com/arloliu/keyspace/types"
)

// Option configures a Collector.
type Option func(*Collector)

// WithPrefix sets the metric name prefix.
//
// Default: "keyspace"
//
// Parameters:
//   - prefix: The prefix to use for all metric names
//
// Returns:
//   - Option: A configuration option
func WithPrefix(prefix string) Option {
	return func(c *Collector) {
		c.prefix = prefix
	}
}

// WithMetricsSet sets the metrics set to use.
//
// If provided, the collector will register metrics with this set instead of
// creating a new one. The caller is responsible for exposing this set
// (e.g., via metrics.WritePrometheus or a custom handler).
//
// Parameters:
//   - set: The metrics set to use
//
// Returns:
//   - Option: A configuration option
func WithMetricsSet(set *metrics.Set) Option {
	return func(c *Collector) {
		c.set = set
	}
}

// Collector implements types.MetricsCollector using VictoriaMetrics.
//
// Per-alias series are created on first use, since keyspace aliases are
// only known at runtime. Thread-safe for concurrent use.
type Collector struct {
	set    *metrics.Set
	prefix string

	openSessions atomic.Int64
}

var _ types.MetricsCollector = (*Collector)(nil)

// New creates a new VictoriaMetrics-based metrics collector.
//
// The collector creates its own metrics.Set and registers it globally
// unless WithMetricsSet is given.
//
// Example:
//
//	collector := vm.New(vm.WithPrefix("myapp"))
//	reg, _ := keyspace.NewRegistry(cluster, table,
//	    keyspace.WithMetrics(collector),
//	)
func New(opts ...Option) *Collector {
	c := &Collector{
		prefix: "keyspace",
	}

	for _, opt := range opts {
		opt(c)
	}

	// If no set is provided, create a new one and register it globally.
	// If a set is provided, we assume the caller manages it.
	if c.set == nil {
		c.set = metrics.NewSet()
		metrics.RegisterSet(c.set)
	}

	c.set.NewGauge(c.prefix+"_open_sessions", func() float64 {
		return float64(c.openSessions.Load())
	})

	return c
}

// Set returns the underlying metrics set.
func (c *Collector) Set() *metrics.Set {
	return c.set
}

// Handler returns an HTTP handler that exposes metrics in Prometheus format.
//
// Example:
//
//	http.HandleFunc("/metrics", collector.Handler)
func (c *Collector) Handler(w http.ResponseWriter, _ *http.Request) {
	c.set.WritePrometheus(w)
}

// WritePrometheus writes all metrics in Prometheus format to the given writer.
func (c *Collector) WritePrometheus(w io.Writer) {
	c.set.WritePrometheus(w)
}

func (c *Collector) aliasName(metric, alias string) string {
	return fmt.Sprintf(`%s_%s{alias=%q}`, c.prefix, metric, alias)
}

func (c *Collector) entityName(metric, alias, entity string) string {
	return fmt.Sprintf(`%s_%s{alias=%q,entity=%q}`, c.prefix, metric, alias, entity)
}

// ----------------------
// Sessions
// ----------------------

// IncSessionCreated increments the sessions created counter.
func (c *Collector) IncSessionCreated(alias string) {
	c.set.GetOrCreateCounter(c.aliasName("sessions_created_total", alias)).Inc()
}

// IncSessionReused increments the cached session hits counter.
func (c *Collector) IncSessionReused(alias string) {
	c.set.GetOrCreateCounter(c.aliasName("sessions_reused_total", alias)).Inc()
}

// IncConnectError increments the connect errors counter.
func (c *Collector) IncConnectError(alias string) {
	c.set.GetOrCreateCounter(c.aliasName("connect_errors_total", alias)).Inc()
}

// ObserveConnectDuration records a connect duration in seconds.
func (c *Collector) ObserveConnectDuration(alias string, seconds float64) {
	c.set.GetOrCreateHistogram(c.aliasName("connect_duration_seconds", alias)).Update(seconds)
}

// SetOpenSessions sets the open sessions gauge.
func (c *Collector) SetOpenSessions(n int) {
	c.openSessions.Store(int64(n))
}

// ----------------------
// Repositories
// ----------------------

// IncRepositoryCreated increments the repositories created counter.
func (c *Collector) IncRepositoryCreated(alias, entity string) {
	c.set.GetOrCreateCounter(c.entityName("repositories_created_total", alias, entity)).Inc()
}

// IncRepositoryError increments the repository lookup errors counter.
func (c *Collector) IncRepositoryError(alias, entity string) {
	c.set.GetOrCreateCounter(c.entityName("repository_errors_total", alias, entity)).Inc()
}
