// Package testutil provides test utilities and mock implementations for keyspace testing.
//
// # Mock Implementations
//
//   - [MockCluster]: Mock keyspace.ClusterClient that opens MockSessions and counts connects
//   - [MockSession]: Mock implementation of cql.Session that records executed statements
//   - [MockQuery]: Mock implementation of cql.Query
//   - [MockBatch]: Mock implementation of cql.Batch
//   - [MockIter]: Mock implementation of cql.Iter
//   - [TestMetricsCollector]: Records registry metrics for assertions
//
// # Usage
//
//	cluster := testutil.NewMockCluster()
//	cluster.SetConnectError("app_audit", errors.New("no hosts available"))
//
//	reg, _ := keyspace.NewRegistry(cluster, table)
//	session, _ := reg.Session(ctx, "default")
//
//	assert.Equal(t, 1, cluster.ConnectCount("app_main"))
//
// # Integration Test Helpers
//
// StartCassandra starts a Cassandra test container (requires Docker) and
// creates the keyspaces a test needs.
package testutil
