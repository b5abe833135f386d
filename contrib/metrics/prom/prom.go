// Package prom provides a Prometheus client_golang implementation of the
// MetricsCollector interface.
//
//	collector := prom.New(prometheus.DefaultRegisterer)
//	reg, _ := keyspace.NewRegistry(cluster, table,
//	    keyspace.WithMetrics(collector),
//	)
//	http.Handle("/metrics", promhttp.Handler())
package prom

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/arloliu/keyspace/types"
)

// Option configures a Collector.
type Option func(*options)

type options struct {
	namespace string
	buckets   []float64
}

// WithNamespace sets the metric namespace. Default: "keyspace".
func WithNamespace(namespace string) Option {
	return func(o *options) {
		o.namespace = namespace
	}
}

// WithConnectBuckets sets the histogram buckets of the connect duration.
func WithConnectBuckets(buckets []float64) Option {
	return func(o *options) {
		o.buckets = buckets
	}
}

// Collector implements types.MetricsCollector with Prometheus vectors.
type Collector struct {
	SessionsCreated     *prometheus.CounterVec
	SessionsReused      *prometheus.CounterVec
	ConnectErrors       *prometheus.CounterVec
	ConnectDuration     *prometheus.HistogramVec
	OpenSessions        prometheus.Gauge
	RepositoriesCreated *prometheus.CounterVec
	RepositoryErrors    *prometheus.CounterVec
}

var _ types.MetricsCollector = (*Collector)(nil)

// New creates a collector and registers its metrics with registerer.
// A nil registerer leaves the metrics unregistered.
func New(registerer prometheus.Registerer, opts ...Option) *Collector {
	o := options{
		namespace: "keyspace",
		buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}
	for _, opt := range opts {
		opt(&o)
	}

	factory := promauto.With(registerer)

	return &Collector{
		SessionsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "sessions_created_total",
			Help:      "Total keyspace sessions opened on the cluster",
		}, []string{"alias"}),
		SessionsReused: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "sessions_reused_total",
			Help:      "Total session requests served from the cache",
		}, []string{"alias"}),
		ConnectErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "connect_errors_total",
			Help:      "Total failed keyspace connects",
		}, []string{"alias"}),
		ConnectDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Name:      "connect_duration_seconds",
			Help:      "Keyspace connect latency in seconds",
			Buckets:   o.buckets,
		}, []string{"alias"}),
		OpenSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: o.namespace,
			Name:      "open_sessions",
			Help:      "Sessions currently held by the registry",
		}),
		RepositoriesCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "repositories_created_total",
			Help:      "Total repositories built",
		}, []string{"alias", "entity"}),
		RepositoryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "repository_errors_total",
			Help:      "Total failed repository lookups",
		}, []string{"alias", "entity"}),
	}
}

// IncSessionCreated increments the sessions created counter.
func (c *Collector) IncSessionCreated(alias string) {
	c.SessionsCreated.WithLabelValues(alias).Inc()
}

// IncSessionReused increments the cached session hits counter.
func (c *Collector) IncSessionReused(alias string) {
	c.SessionsReused.WithLabelValues(alias).Inc()
}

// IncConnectError increments the connect errors counter.
func (c *Collector) IncConnectError(alias string) {
	c.ConnectErrors.WithLabelValues(alias).Inc()
}

// ObserveConnectDuration records a connect duration in seconds.
func (c *Collector) ObserveConnectDuration(alias string, seconds float64) {
	c.ConnectDuration.WithLabelValues(alias).Observe(seconds)
}

// SetOpenSessions sets the open sessions gauge.
func (c *Collector) SetOpenSessions(n int) {
	c.OpenSessions.Set(float64(n))
}

// IncRepositoryCreated increments the repositories created counter.
func (c *Collector) IncRepositoryCreated(alias, entity string) {
	c.RepositoriesCreated.WithLabelValues(alias, entity).Inc()
}

// IncRepositoryError increments the repository lookup errors counter.
func (c *Collector) IncRepositoryError(alias, entity string) {
	c.RepositoryErrors.WithLabelValues(alias, entity).Inc()
}
