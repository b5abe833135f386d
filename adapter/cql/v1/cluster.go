package v1

import (
	"context"

	"github.com/gocql/gocql"

	"github.com/arloliu/keyspace/adapter/cql"
	"github.com/arloliu/keyspace/config"
	"github.com/arloliu/keyspace/internal/dial"
)

// Cluster opens keyspace-bound gocql v1 sessions from a shared cluster configuration.
//
// It implements keyspace.ClusterClient. The configuration is copied for every
// Connect, so the caller's ClusterConfig is never mutated.
type Cluster struct {
	config *gocql.ClusterConfig
}

// NewCluster creates a cluster client from a gocql cluster configuration.
//
// Parameters:
//   - config: Hosts, port, timeouts and authentication; Keyspace is ignored
//
// Returns:
//   - *Cluster: A cluster client
func NewCluster(config *gocql.ClusterConfig) *Cluster {
	return &Cluster{config: config}
}

// ClusterFromConfig builds a cluster client from a loaded registry configuration.
//
// Example:
//
//	cfg, _ := config.Load("keyspace.yaml")
//	cluster := v1.ClusterFromConfig(cfg)
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
// The call returns when the session is ready, when gocql fails, or when ctx
// ends; a session that completes after ctx ended is closed.
//
// Parameters:
//   - ctx: Context bounding the connect
//   - keyspace: Physical keyspace name
//
// Returns:
//   - cql.Session: A keyspace-bound session
//   - error: Error from gocql or ctx
func (c *Cluster) Connect(ctx context.Context, keyspace string) (cql.Session, error) {
	cfg := *c.config
	cfg.Keyspace = keyspace

	session, err := dial.Do(ctx, cfg.CreateSession, func(s *gocql.Session) { s.Close() })
	if err != nil {
		return nil, err
	}

	return NewSession(session, keyspace), nil
}

// Config returns the underlying gocql cluster configuration.
func (c *Cluster) Config() *gocql.ClusterConfig {
	return c.config
}
