package keyspace

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/arloliu/keyspace/adapter/cql"
	"github.com/arloliu/keyspace/types"
)

// errNilSession is the cause reported when a ClusterClient returns neither a session nor an error.
var errNilSession = errors.New("cluster client returned a nil session")

// Registry hands out one session per configured keyspace alias and the
// repositories bound to those sessions.
//
// Sessions are created lazily on first request and reused for the lifetime of
// the registry. Concurrent first requests for one alias share a single
// connect; failed connects are not cached, so the next request retries.
//
// Registry is safe for concurrent use.
type Registry struct {
	cluster   ClusterClient
	keyspaces types.KeyspaceTable
	config    *RegistryConfig

	mu        sync.RWMutex
	sessions  map[string]cql.Session
	states    map[string]types.SessionState
	repos     map[repoKey]Repository
	factories map[factoryKey]*registration

	sessionGroup singleflight.Group
	repoGroup    singleflight.Group
	closed       atomic.Bool
}

type repoKey struct {
	alias  string
	entity string
}

func (k repoKey) String() string {
	return k.alias + "\x00" + k.entity
}

type factoryKey struct {
	namespace string
	entity    string
}

// registration is compared by identity to detect a factory replaced while a
// repository was being built.
type registration struct {
	factory RepositoryFactory
}

// NewRegistry creates a registry over a cluster client and a keyspace table.
//
// No session is opened here; use Warm to connect every keyspace up front.
//
// Parameters:
//   - cluster: Cluster client used to open sessions (owned by the registry)
//   - keyspaces: Alias to physical keyspace table
//   - opts: Optional configuration
//
// Returns:
//   - *Registry: A new registry
//   - error: ErrNilCluster, ErrNoKeyspaces, or a ConfigurationError for an invalid WithRepository
func NewRegistry(cluster ClusterClient, keyspaces types.KeyspaceTable, opts ...Option) (*Registry, error) {
	if cluster == nil {
		return nil, types.ErrNilCluster
	}
	if keyspaces.Len() == 0 {
		return nil, types.ErrNoKeyspaces
	}

	config := DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}

	r := &Registry{
		cluster:   cluster,
		keyspaces: keyspaces,
		config:    config,
		sessions:  make(map[string]cql.Session, keyspaces.Len()),
		states:    make(map[string]types.SessionState, keyspaces.Len()),
		repos:     make(map[repoKey]Repository),
		factories: make(map[factoryKey]*registration, len(config.Repositories)),
	}

	for _, reg := range config.Repositories {
		if err := r.RegisterRepositoryFactory(reg.Namespace, reg.Entity, reg.Factory); err != nil {
			return nil, err
		}
	}

	if config.Async {
		config.Logger.Warn("async session creation is not supported, sessions are created synchronously")
	}

	return r, nil
}

// Keyspaces returns the keyspace table the registry was built with.
func (r *Registry) Keyspaces() types.KeyspaceTable {
	return r.keyspaces
}

// State returns the lifecycle state of the session for alias.
//
// Unknown aliases report StateUncreated. Every alias reports StateClosed
// after Close.
func (r *Registry) State(alias string) types.SessionState {
	if r.closed.Load() {
		return types.StateClosed
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.states[alias]
}

// Session returns the session bound to the keyspace configured for alias.
//
// The first request for an alias opens the session through the cluster
// client; later requests return the cached session without touching the
// cluster. Concurrent first requests share one connect bounded by the
// connect timeout. It keeps the first caller's context values but not its
// cancellation; each caller stops waiting when its own context ends.
//
// Parameters:
//   - ctx: Context bounding the wait
//   - alias: Keyspace alias
//
// Returns:
//   - cql.Session: The keyspace-bound session
//   - error: ConfigurationError (KindKeyspaceNotConfigured or KindConnectFailed),
//     ErrRegistryClosed, or ctx.Err()
func (r *Registry) Session(ctx context.Context, alias string) (cql.Session, error) {
	if r.closed.Load() {
		return nil, types.ErrRegistryClosed
	}

	name, ok := r.keyspaces.Lookup(alias)
	if !ok {
		return nil, &types.ConfigurationError{Kind: types.KindKeyspaceNotConfigured, Alias: alias}
	}

	r.mu.RLock()
	session, ok := r.sessions[alias]
	r.mu.RUnlock()
	if ok {
		r.config.Metrics.IncSessionReused(alias)
		return session, nil
	}

	// The connect is shared, so one caller ending its context must not fail
	// the others. ConnectTimeout still bounds it.
	shared := context.WithoutCancel(ctx)
	ch := r.sessionGroup.DoChan(alias, func() (any, error) {
		r.mu.RLock()
		session, ok := r.sessions[alias]
		r.mu.RUnlock()
		if ok {
			return session, nil
		}

		return r.connect(shared, alias, name)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}

		return res.Val.(cql.Session), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// connect opens and caches the session for alias. It runs inside the session singleflight.
func (r *Registry) connect(ctx context.Context, alias, name string) (cql.Session, error) {
	r.mu.Lock()
	if r.closed.Load() {
		r.mu.Unlock()
		return nil, types.ErrRegistryClosed
	}
	r.states[alias] = types.StateCreating
	r.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, r.config.ConnectTimeout)
	defer cancel()

	start := time.Now()
	session, err := r.cluster.Connect(ctx, name)
	r.config.Metrics.ObserveConnectDuration(alias, time.Since(start).Seconds())
	if err == nil && session == nil {
		err = errNilSession
	}

	if err != nil {
		r.mu.Lock()
		if !r.closed.Load() {
			r.states[alias] = types.StateUncreated
		}
		r.mu.Unlock()

		r.config.Metrics.IncConnectError(alias)
		r.config.Logger.Error("failed to create keyspace session",
			"alias", alias,
			"keyspace", name,
			"error", err,
		)

		return nil, &types.ConfigurationError{
			Kind:     types.KindConnectFailed,
			Alias:    alias,
			Keyspace: name,
			Cause:    err,
		}
	}

	if got := session.Keyspace(); got != name {
		r.config.Logger.Warn("session is bound to an unexpected keyspace",
			"alias", alias,
			"keyspace", name,
			"session_keyspace", got,
		)
	}

	r.mu.Lock()
	if r.closed.Load() {
		r.mu.Unlock()
		session.Close()

		return nil, types.ErrRegistryClosed
	}
	r.sessions[alias] = session
	r.states[alias] = types.StateReady
	open := len(r.sessions)
	r.mu.Unlock()

	r.config.Metrics.IncSessionCreated(alias)
	r.config.Metrics.SetOpenSessions(open)
	r.config.Logger.Info("keyspace session created",
		"alias", alias,
		"keyspace", name,
		"duration", time.Since(start),
	)

	return session, nil
}

// Warm opens the session of every configured keyspace concurrently.
//
// Failures do not stop the other connects; all of them are joined into the
// returned error.
func (r *Registry) Warm(ctx context.Context) error {
	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
	)

	for _, alias := range r.keyspaces.Aliases() {
		g.Go(func() error {
			if _, err := r.Session(ctx, alias); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}

			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

// RegisterRepositoryFactory binds a factory to "<namespace>:<entity>".
//
// A later registration for the same pair replaces the earlier one, and any
// repositories already built for the entity are discarded so the next lookup
// uses the new factory.
//
// Returns:
//   - error: ConfigurationError (KindMalformedSpec) for empty names, names
//     containing ':' or a nil factory
func (r *Registry) RegisterRepositoryFactory(namespace, entity string, factory RepositoryFactory) error {
	spec := namespace + ":" + entity
	if _, _, err := ParseRepositorySpec(spec); err != nil {
		return err
	}
	if factory == nil {
		return &types.ConfigurationError{
			Kind:  types.KindMalformedSpec,
			Spec:  spec,
			Cause: errors.New("nil repository factory"),
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories[factoryKey{namespace: namespace, entity: entity}] = &registration{factory: factory}
	for key := range r.repos {
		if key.entity == entity {
			delete(r.repos, key)
		}
	}

	return nil
}

// Repository returns the repository for spec bound to the DefaultKeyspace alias.
func (r *Registry) Repository(ctx context.Context, spec string) (Repository, error) {
	return r.RepositoryIn(ctx, spec, DefaultKeyspace)
}

// RepositoryIn returns the repository for spec bound to the session of alias.
//
// Repositories are cached per (alias, entity): the same instance is returned
// for every later request. A factory result that does not satisfy Repository
// is reported and not cached.
//
// Parameters:
//   - ctx: Context bounding a session connect, if one is needed
//   - spec: Repository spec "<namespace>:<entity>"
//   - alias: Keyspace alias
//
// Returns:
//   - Repository: The session-bound repository
//   - error: ConfigurationError of kind KindMalformedSpec, KindKeyspaceNotConfigured,
//     KindRepositoryNotRegistered, KindNotRepository or KindConnectFailed
func (r *Registry) RepositoryIn(ctx context.Context, spec, alias string) (Repository, error) {
	if r.closed.Load() {
		return nil, types.ErrRegistryClosed
	}

	namespace, entity, err := ParseRepositorySpec(spec)
	if err != nil || alias == "" {
		return nil, &types.ConfigurationError{Kind: types.KindMalformedSpec, Alias: alias, Spec: spec}
	}

	if !r.keyspaces.Has(alias) {
		return nil, &types.ConfigurationError{Kind: types.KindKeyspaceNotConfigured, Alias: alias, Spec: spec}
	}

	key := repoKey{alias: alias, entity: entity}

	r.mu.RLock()
	repo, ok := r.repos[key]
	r.mu.RUnlock()
	if ok {
		return repo, nil
	}

	shared := context.WithoutCancel(ctx)
	ch := r.repoGroup.DoChan(key.String(), func() (any, error) {
		return r.buildRepository(shared, key, namespace, spec)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			r.config.Metrics.IncRepositoryError(alias, entity)
			return nil, res.Err
		}

		return res.Val.(Repository), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// buildRepository constructs and caches a repository. It runs inside the repository singleflight.
func (r *Registry) buildRepository(ctx context.Context, key repoKey, namespace, spec string) (Repository, error) {
	fk := factoryKey{namespace: namespace, entity: key.entity}

	r.mu.RLock()
	repo, ok := r.repos[key]
	reg, registered := r.factories[fk]
	r.mu.RUnlock()
	if ok {
		return repo, nil
	}
	if !registered {
		return nil, &types.ConfigurationError{Kind: types.KindRepositoryNotRegistered, Alias: key.alias, Spec: spec}
	}

	session, err := r.Session(ctx, key.alias)
	if err != nil {
		return nil, err
	}

	value := reg.factory(session)
	repo, ok = value.(Repository)
	if !ok || repo == nil {
		r.config.Logger.Warn("repository factory returned a non-repository value",
			"spec", spec,
			"alias", key.alias,
			"type", fmt.Sprintf("%T", value),
		)

		return nil, &types.ConfigurationError{Kind: types.KindNotRepository, Alias: key.alias, Spec: spec}
	}

	r.mu.Lock()
	if r.closed.Load() {
		r.mu.Unlock()
		return nil, types.ErrRegistryClosed
	}
	// A replaced factory still serves this caller but is not cached.
	if r.factories[fk] == reg {
		r.repos[key] = repo
	}
	r.mu.Unlock()

	r.config.Metrics.IncRepositoryCreated(key.alias, key.entity)
	r.config.Logger.Debug("repository created", "spec", spec, "alias", key.alias)

	return repo, nil
}

// RepositoryAs returns the repository for spec bound to alias, typed as T.
//
// Example:
//
//	invoices, err := keyspace.RepositoryAs[*InvoiceRepository](ctx, reg, "billing:invoice", "default")
//
// Returns:
//   - T: The typed repository
//   - error: Any RepositoryIn error, or a ConfigurationError (KindNotRepository)
//     if the repository is not a T
func RepositoryAs[T Repository](ctx context.Context, reg *Registry, spec, alias string) (T, error) {
	var zero T

	repo, err := reg.RepositoryIn(ctx, spec, alias)
	if err != nil {
		return zero, err
	}

	typed, ok := repo.(T)
	if !ok {
		return zero, &types.ConfigurationError{
			Kind:  types.KindNotRepository,
			Alias: alias,
			Spec:  spec,
			Cause: fmt.Errorf("got %T, want %T", repo, zero),
		}
	}

	return typed, nil
}

// Close releases every session, drops cached repositories and closes the
// cluster client if it implements io.Closer.
//
// Close is idempotent; calls after the first return ErrRegistryClosed.
// A connect still in flight when Close runs has its session closed as soon
// as it completes.
func (r *Registry) Close() error {
	r.mu.Lock()
	if !r.closed.CompareAndSwap(false, true) {
		r.mu.Unlock()
		return types.ErrRegistryClosed
	}

	sessions := r.sessions
	r.sessions = make(map[string]cql.Session)
	r.repos = make(map[repoKey]Repository)
	for alias := range r.states {
		r.states[alias] = types.StateClosed
	}
	r.mu.Unlock()

	for alias, session := range sessions {
		session.Close()
		r.config.Logger.Debug("keyspace session closed", "alias", alias)
	}
	r.config.Metrics.SetOpenSessions(0)

	var err error
	if closer, ok := r.cluster.(io.Closer); ok {
		err = closer.Close()
	}

	r.config.Logger.Info("keyspace registry closed", "sessions", len(sessions))

	return err
}
