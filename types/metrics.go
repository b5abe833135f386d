package types

// MetricsCollector defines methods for collecting registry metrics.
//
// Keyspace-scoped methods receive the keyspace alias for labeling.
// Implementations should be thread-safe as methods may be called concurrently.
//
// Example usage with VictoriaMetrics (via contrib/metrics/vm):
//
//	import vmmetrics "github.com/arloliu/keyspace/contrib/metrics/vm"
//
//	collector := vmmetrics.New(vmmetrics.WithPrefix("myapp"))
//	reg, _ := keyspace.NewRegistry(cluster, table,
//	    keyspace.WithMetrics(collector),
//	)
//
//	// Expose metrics via HTTP
//	http.HandleFunc("/metrics", collector.Handler)
type MetricsCollector interface {
	// ----------------------
	// Sessions
	// ----------------------

	// IncSessionCreated increments the counter of sessions opened on the cluster.
	IncSessionCreated(alias string)

	// IncSessionReused increments the counter of requests served from the session cache.
	IncSessionReused(alias string)

	// IncConnectError increments the counter of failed connect attempts.
	IncConnectError(alias string)

	// ObserveConnectDuration records a connect attempt duration in seconds.
	ObserveConnectDuration(alias string, seconds float64)

	// SetOpenSessions sets the number of sessions currently held by the registry.
	SetOpenSessions(n int)

	// ----------------------
	// Repositories
	// ----------------------

	// IncRepositoryCreated increments the counter of repositories constructed.
	IncRepositoryCreated(alias, entity string)

	// IncRepositoryError increments the counter of failed repository lookups.
	IncRepositoryError(alias, entity string)
}
