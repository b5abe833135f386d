// Package integration_test runs the keyspace registry against a real
// Cassandra node.
//
// # Running Integration Tests
//
// Integration tests are skipped with -short or SKIP_INTEGRATION_TESTS=1:
//
//	go test -short ./...           # Skips integration tests
//	go test ./test/integration/... # Runs integration tests
//
// The tests require Docker and use testcontainers to start one Cassandra
// container shared by every test in the package.
package integration_test
