package keyspace

import (
	"context"

	"github.com/arloliu/keyspace/adapter/cql"
	"github.com/arloliu/keyspace/types"
)

// Type aliases for convenience - re-export from types package.
type (
	Keyspace           = types.Keyspace
	KeyspaceTable      = types.KeyspaceTable
	SessionState       = types.SessionState
	ConfigurationError = types.ConfigurationError
	ErrorKind          = types.ErrorKind
	Logger             = types.Logger
	MetricsCollector   = types.MetricsCollector
	Session            = cql.Session
)

// Re-export session state constants for convenience.
const (
	StateUncreated = types.StateUncreated
	StateCreating  = types.StateCreating
	StateReady     = types.StateReady
	StateClosed    = types.StateClosed
)

// DefaultKeyspace is the alias used by Registry.Repository.
const DefaultKeyspace = "default"

// ClusterClient opens keyspace-bound sessions on a Cassandra cluster.
//
// Implementations are provided by the driver adapters:
//   - v1.Cluster for github.com/gocql/gocql
//   - v2.Cluster for github.com/apache/cassandra-gocql-driver/v2
//
// A Registry owns its ClusterClient. If the client also implements io.Closer,
// Registry.Close closes it.
type ClusterClient interface {
	// Connect opens a session whose default keyspace is the given physical name.
	//
	// Parameters:
	//   - ctx: Context bounding the connect
	//   - keyspace: Physical keyspace name
	//
	// Returns:
	//   - cql.Session: A ready session
	//   - error: Driver or context error
	Connect(ctx context.Context, keyspace string) (cql.Session, error)
}

// NewKeyspaceTable builds an ordered alias to physical keyspace table.
//
// Example:
//
//	table, err := keyspace.NewKeyspaceTable(
//	    keyspace.Keyspace{Alias: "default", Name: "app_main"},
//	    keyspace.Keyspace{Alias: "audit", Name: "app_audit"},
//	)
func NewKeyspaceTable(entries ...Keyspace) (KeyspaceTable, error) {
	return types.NewKeyspaceTable(entries...)
}
