// Package keyspace provides a registry of keyspace-bound Cassandra sessions
// and the repositories built on them.
//
// A Registry maps logical aliases ("default", "audit") to physical keyspaces.
// Sessions are opened lazily on first use, exactly once per alias, and cached
// until Close. Repositories are looked up by a "<namespace>:<entity>" spec and
// cached per (alias, entity).
//
// # Basic Usage
//
//	cfg, err := config.Load("keyspace.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	table, err := cfg.Table()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	reg, err := keyspace.NewRegistry(v1.ClusterFromConfig(cfg), table,
//	    keyspace.WithConnectTimeout(cfg.ConnectTimeout),
//	    keyspace.WithRepository("billing", "invoice", NewInvoiceRepository),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer reg.Close()
//
//	session, err := reg.Session(ctx, "audit")
//	invoices, err := keyspace.RepositoryAs[*InvoiceRepository](ctx, reg, "billing:invoice", "default")
//
// # Drivers
//
// The registry depends only on the ClusterClient interface. Two implementations
// ship with the module:
//
//   - adapter/cql/v1: github.com/gocql/gocql
//   - adapter/cql/v2: github.com/apache/cassandra-gocql-driver/v2
//
// # Error Handling
//
// Lookup failures are returned as *types.ConfigurationError. Its Kind tells the
// cause apart and each kind matches a sentinel with errors.Is:
//
//   - types.ErrKeyspaceNotConfigured: the alias is not in the keyspace table
//   - types.ErrConnectFailed: the driver could not open the session (not cached, retried on next call)
//   - types.ErrMalformedSpec: the repository spec is not "<namespace>:<entity>"
//   - types.ErrRepositoryNotRegistered: no factory for the entity
//   - types.ErrNotRepository: the factory result does not implement Repository
//
// Example:
//
//	_, err := reg.Session(ctx, "reporting")
//	var cfgErr *types.ConfigurationError
//	if errors.As(err, &cfgErr) && cfgErr.Kind == types.KindKeyspaceNotConfigured {
//	    log.Printf("alias %q is not configured", cfgErr.Alias)
//	}
//
// Calls after Close return types.ErrRegistryClosed.
//
// # Records
//
// Package record validates field maps against a Schema (required, optional,
// defaults, type tags, allowed values) before EntityRepository writes them.
package keyspace
