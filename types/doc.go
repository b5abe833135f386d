// Package types provides shared types and error definitions for the keyspace library.
//
// This is a leaf package with zero keyspace imports to prevent import cycles.
// All packages in keyspace can safely import this package.
//
// # Keyspace Table
//
// KeyspaceTable is the ordered alias to physical keyspace mapping a registry is
// built with:
//
//	table, err := types.NewKeyspaceTable(
//	    types.Keyspace{Alias: "default", Name: "app_main"},
//	    types.Keyspace{Alias: "audit", Name: "app_audit"},
//	)
//
// # Errors
//
// Registry lookups fail with *ConfigurationError. Its Kind tells the cause apart,
// and every kind matches a sentinel via errors.Is:
//
//   - ErrKeyspaceNotConfigured: alias absent from the keyspace table
//   - ErrConnectFailed: the cluster client failed to open a session
//   - ErrMalformedSpec: repository spec is not "<namespace>:<entity>"
//   - ErrRepositoryNotRegistered: no factory for the repository spec
//   - ErrNotRepository: factory result does not satisfy the Repository capability
//
// Other sentinels:
//
//   - ErrRegistryClosed: operation attempted on a closed registry
//   - ErrNilCluster: a nil cluster client was provided
//   - ErrNoKeyspaces: the keyspace table is empty
//   - ErrInvalidIdentifier: a keyspace, table or column name is not a CQL identifier
package types
