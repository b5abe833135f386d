package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/gocql/gocql"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/cassandra"
)

// CassandraContainer wraps a Cassandra test container.
type CassandraContainer struct {
	Container *cassandra.CassandraContainer
	Host      string
	Keyspaces []string
}

// CassandraOptions configures the Cassandra container.
type CassandraOptions struct {
	// Image is the Cassandra image to use. Defaults to "cassandra:4.1".
	Image string
	// Keyspaces are created after startup. Defaults to "test_keyspace".
	Keyspaces []string
}

// DefaultCassandraOptions returns default options for Cassandra container.
func DefaultCassandraOptions() CassandraOptions {
	return CassandraOptions{
		Image:     "cassandra:4.1",
		Keyspaces: []string{"test_keyspace"},
	}
}

// StartCassandra starts a Cassandra container and creates the requested keyspaces.
//
// The container is automatically terminated when the test completes.
//
// Parameters:
//   - ctx: Context for container operations
//   - t: Testing context for cleanup registration
//   - opts: Optional configuration (nil uses defaults)
//
// Returns:
//   - *CassandraContainer: Container with connection details
//   - error: Error if container fails to start
func StartCassandra(ctx context.Context, t *testing.T, opts *CassandraOptions) (*CassandraContainer, error) {
	t.Helper()

	c, err := RunCassandra(ctx, opts)
	if err != nil {
		return nil, err
	}

	t.Cleanup(func() {
		if err := c.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate Cassandra container: %v", err)
		}
	})

	return c, nil
}

// RunCassandra starts a Cassandra container and creates the requested
// keyspaces. The caller terminates it; use it from TestMain.
func RunCassandra(ctx context.Context, opts *CassandraOptions) (*CassandraContainer, error) {
	if opts == nil {
		defaultOpts := DefaultCassandraOptions()
		opts = &defaultOpts
	}

	container, err := cassandra.Run(ctx, opts.Image,
		testcontainers.WithEnv(map[string]string{
			"HEAP_NEWSIZE":     "128M",
			"MAX_HEAP_SIZE":    "512M",
			"CASSANDRA_SNITCH": "SimpleSnitch",
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start Cassandra container: %w", err)
	}

	c := &CassandraContainer{Container: container, Keyspaces: opts.Keyspaces}

	c.Host, err = container.ConnectionHost(ctx)
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection host: %w", err)
	}

	if err := createKeyspaces(c.Host, opts.Keyspaces); err != nil {
		_ = c.Terminate(ctx)
		return nil, err
	}

	return c, nil
}

// Terminate stops the container.
func (c *CassandraContainer) Terminate(ctx context.Context) error {
	return c.Container.Terminate(ctx)
}

func createKeyspaces(host string, keyspaces []string) error {
	cluster := NewClusterConfig(host)
	cluster.Keyspace = "system"

	// Cassandra accepts CQL connections some time after the port opens.
	var (
		session *gocql.Session
		err     error
	)
	for i := 0; i < 10; i++ {
		session, err = cluster.CreateSession()
		if err == nil {
			break
		}
		time.Sleep(3 * time.Second)
	}
	if err != nil {
		return fmt.Errorf("failed to create session after retries: %w", err)
	}
	defer session.Close()

	for _, keyspace := range keyspaces {
		stmt := fmt.Sprintf(`
			CREATE KEYSPACE IF NOT EXISTS %s
			WITH replication = {'class': 'SimpleStrategy', 'replication_factor': 1}
		`, keyspace)
		if err := session.Query(stmt).Exec(); err != nil {
			return fmt.Errorf("failed to create keyspace %s: %w", keyspace, err)
		}
	}

	return nil
}

// NewClusterConfig returns a gocql cluster configuration tuned for a
// single-node test container.
func NewClusterConfig(host string) *gocql.ClusterConfig {
	cluster := gocql.NewCluster(host)
	cluster.Consistency = gocql.One
	cluster.Timeout = 60 * time.Second
	cluster.ConnectTimeout = 60 * time.Second

	return cluster
}
