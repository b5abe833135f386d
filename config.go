package keyspace

import (
	"time"

	"github.com/arloliu/keyspace/internal/logging"
	"github.com/arloliu/keyspace/internal/metrics"
	"github.com/arloliu/keyspace/types"
)

// DefaultConnectTimeout bounds a single keyspace connect when no timeout is configured.
const DefaultConnectTimeout = 10 * time.Second

// RegistryConfig holds configuration for a Registry.
type RegistryConfig struct {
	ConnectTimeout time.Duration
	Async          bool
	Metrics        MetricsCollector
	Logger         types.Logger
	Repositories   []RepositoryRegistration
}

// RepositoryRegistration binds a repository factory to a namespace and entity.
type RepositoryRegistration struct {
	Namespace string
	Entity    string
	Factory   RepositoryFactory
}

// DefaultConfig returns a RegistryConfig with sensible defaults.
//
// Returns:
//   - *RegistryConfig: Configuration with a 10s connect timeout, no-op logger and metrics
func DefaultConfig() *RegistryConfig {
	return &RegistryConfig{
		ConnectTimeout: DefaultConnectTimeout,
		Metrics:        metrics.NewNopMetrics(),
		Logger:         logging.NewNopLogger(),
	}
}

// Option configures a RegistryConfig.
type Option func(*RegistryConfig)

// WithConnectTimeout sets the upper bound for opening one keyspace session.
//
// The caller's context still applies; whichever ends first aborts the connect.
// Non-positive values are ignored.
//
// Parameters:
//   - timeout: Maximum connect duration
//
// Returns:
//   - Option: Configuration option
func WithConnectTimeout(timeout time.Duration) Option {
	return func(c *RegistryConfig) {
		if timeout > 0 {
			c.ConnectTimeout = timeout
		}
	}
}

// WithAsync records the async flag from existing configuration files.
//
// Sessions are always created synchronously; the flag only triggers a warning
// at construction so misconfigured deployments are visible.
func WithAsync(async bool) Option {
	return func(c *RegistryConfig) {
		c.Async = async
	}
}

// WithRepository registers a repository factory at construction time.
//
// Equivalent to calling Registry.RegisterRepositoryFactory after NewRegistry,
// except that an invalid namespace or entity fails NewRegistry.
//
// Example:
//
//	reg, _ := keyspace.NewRegistry(cluster, table,
//	    keyspace.WithRepository("billing", "invoice", NewInvoiceRepository),
//	)
func WithRepository(namespace, entity string, factory RepositoryFactory) Option {
	return func(c *RegistryConfig) {
		c.Repositories = append(c.Repositories, RepositoryRegistration{
			Namespace: namespace,
			Entity:    entity,
			Factory:   factory,
		})
	}
}

// WithMetrics sets the metrics collector.
//
// If not set, a no-op collector is used.
//
// Example:
//
//	import vmmetrics "github.com/arloliu/keyspace/contrib/metrics/vm"
//
//	collector := vmmetrics.New(vmmetrics.WithPrefix("myapp"))
//	reg, _ := keyspace.NewRegistry(cluster, table,
//	    keyspace.WithMetrics(collector),
//	)
func WithMetrics(collector MetricsCollector) Option {
	return func(c *RegistryConfig) {
		if collector != nil {
			c.Metrics = collector
		}
	}
}

// WithLogger sets the structured logger.
//
// If not set, a no-op logger is used that discards all messages.
// The logger interface is compatible with zap.SugaredLogger's ...w methods
// through contrib/logging/zap.
//
// Example:
//
//	logger, _ := zap.NewProduction()
//	reg, _ := keyspace.NewRegistry(cluster, table,
//	    keyspace.WithLogger(zaplog.New(logger)),
//	)
func WithLogger(logger types.Logger) Option {
	return func(c *RegistryConfig) {
		if logger != nil {
			c.Logger = logger
		}
	}
}
