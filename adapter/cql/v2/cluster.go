package v2

import (
	"context"

	gocql "github.com/apache/cassandra-gocql-driver/v2"

	"github.com/arloliu/keyspace/adapter/cql"
	"github.com/arloliu/keyspace/config"
	"github.com/arloliu/keyspace/internal/dial"
)

// Cluster opens keyspace-bound sessions with the Apache Cassandra driver.
//
// It implements keyspace.ClusterClient.
type Cluster struct {
	config *gocql.ClusterConfig
}

// NewCluster creates a cluster client from a driver cluster configuration.
// The Keyspace field of config is ignored.
func NewCluster(config *gocql.ClusterConfig) *Cluster {
	return &Cluster{config: config}
}

// ClusterFromConfig builds a cluster client from a loaded registry configuration.
func ClusterFromConfig(cfg *config.Config) *Cluster {
	cluster := gocql.NewCluster(cfg.Hosts...)
	cluster.Port = cfg.Port
	cluster.Consistency = ToGocqlConsistency(cfg.ConsistencyLevel())
	cluster.ConnectTimeout = cfg.ConnectTimeout
	cluster.Timeout = cfg.Timeout
	if cfg.Username != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: cfg.Username,
			Password: cfg.Password,
		}
	}

	return NewCluster(cluster)
}

// Connect opens a session bound to the given physical keyspace.
//
// Parameters:
//   - ctx: Context bounding the connect
//   - keyspace: Physical keyspace name
//
// Returns:
//   - cql.Session: A keyspace-bound session
//   - error: Error from the driver or ctx
func (c *Cluster) Connect(ctx context.Context, keyspace string) (cql.Session, error) {
	cfg := *c.config
	cfg.Keyspace = keyspace

	session, err := dial.Do(ctx, cfg.CreateSession, func(s *gocql.Session) { s.Close() })
	if err != nil {
		return nil, err
	}

	return NewSession(session, keyspace), nil
}

// Config returns the underlying driver cluster configuration.
func (c *Cluster) Config() *gocql.ClusterConfig {
	return c.config
}
