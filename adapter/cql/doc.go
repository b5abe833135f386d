// Package cql provides adapter interfaces and implementations for CQL (Cassandra Query Language)
// database drivers.
//
// This package defines the session surface a keyspace registry hands out,
// allowing keyspace to work with different versions of gocql or other CQL drivers.
//
// # Interfaces
//
//   - Session: A keyspace-bound session for executing queries
//   - Query: A CQL query with bind parameters
//   - Batch: Groups multiple statements for atomic execution
//   - Iter: Iterates over query results
//
// # Adapters
//
// Driver-specific adapters are provided in subpackages. Each one provides a
// Session wrapper and a Cluster that opens keyspace-bound sessions:
//
//   - [github.com/arloliu/keyspace/adapter/cql/v1]: Adapter for gocql v1.x
//   - [github.com/arloliu/keyspace/adapter/cql/v2]: Adapter for apache/cassandra-gocql-driver v2.x
//
// # Usage
//
//	import (
//	    "github.com/arloliu/keyspace"
//	    v1 "github.com/arloliu/keyspace/adapter/cql/v1"
//	    "github.com/gocql/gocql"
//	)
//
//	cluster := v1.NewCluster(gocql.NewCluster("127.0.0.1"))
//	reg, _ := keyspace.NewRegistry(cluster, table)
//	defer reg.Close()
//
//	session, _ := reg.Session(ctx, "default")
package cql
