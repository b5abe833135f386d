// Package vm provides a VictoriaMetrics-based implementation of the MetricsCollector interface.
//
// This package uses github.com/VictoriaMetrics/metrics for lightweight,
// high-performance Prometheus-compatible metrics collection.
//
// # Basic Usage
//
// Create a collector with default prefix "keyspace":
//
//	collector := vm.New()
//	reg, _ := keyspace.NewRegistry(cluster, table,
//	    keyspace.WithMetrics(collector),
//	)
//
// # Exposing Metrics
//
//	http.HandleFunc("/metrics", collector.Handler)
//	http.ListenAndServe(":8080", nil)
//
// # Metrics Provided
//
// Sessions:
//   - {prefix}_sessions_created_total{alias} - Counter of sessions opened
//   - {prefix}_sessions_reused_total{alias} - Counter of cached session hits
//   - {prefix}_connect_errors_total{alias} - Counter of failed connects
//   - {prefix}_connect_duration_seconds{alias} - Histogram of connect latency
//   - {prefix}_open_sessions - Gauge of sessions held by the registry
//
// Repositories:
//   - {prefix}_repositories_created_total{alias,entity} - Counter of repositories built
//   - {prefix}_repository_errors_total{alias,entity} - Counter of failed lookups
package vm
