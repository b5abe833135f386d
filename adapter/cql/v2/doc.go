// Package v2 provides an adapter for the Apache Cassandra gocql driver v2.x
// (github.com/apache/cassandra-gocql-driver/v2) to work with the keyspace library.
//
// The API mirrors package v1:
//
//	cluster := gocql.NewCluster("127.0.0.1")
//	reg, err := keyspace.NewRegistry(v2.NewCluster(cluster), table)
//
// The v2 driver accepts a context on every execution method, so the adapter
// forwards contexts directly.
package v2
