// Package types provides shared types and errors for the keyspace library.
//
// This is a "leaf" package with no imports from other keyspace packages,
// allowing it to be imported by any package without causing import cycles.
package types

import (
	"errors"
	"regexp"
	"strings"
)

// identifierRegex matches unquoted CQL identifiers (keyspace, table and column names).
var identifierRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]{0,47}$`)

// ValidIdentifier reports whether name is a valid unquoted CQL identifier.
//
// Parameters:
//   - name: Keyspace, table or column name
//
// Returns:
//   - bool: true if the name can be used without quoting
func ValidIdentifier(name string) bool {
	return identifierRegex.MatchString(name)
}

// SessionState describes the lifecycle of a keyspace session inside a registry.
type SessionState int

const (
	// StateUncreated means no session exists and no connect is in flight.
	StateUncreated SessionState = iota
	// StateCreating means a connect to the cluster is in flight.
	StateCreating
	// StateReady means a session is cached and reused for every request.
	StateReady
	// StateClosed means the registry was closed and the session released.
	StateClosed
)

// String returns the string representation of the SessionState.
func (s SessionState) String() string {
	switch s {
	case StateUncreated:
		return "uncreated"
	case StateCreating:
		return "creating"
	case StateReady:
		return "ready"
	case StateClosed:
		return "closed"
	}

	return "unknown"
}

// Sentinel errors for registry failures.
//
// Every ConfigurationError matches exactly one of the kind sentinels below via
// errors.Is, so callers can tell an unconfigured keyspace from a driver failure.
var (
	// ErrKeyspaceNotConfigured indicates the alias is absent from the keyspace table.
	ErrKeyspaceNotConfigured = errors.New("keyspace: keyspace not configured")

	// ErrConnectFailed indicates the cluster client failed to open a session.
	ErrConnectFailed = errors.New("keyspace: session could not be created")

	// ErrMalformedSpec indicates a repository spec or alias that is not well formed.
	ErrMalformedSpec = errors.New("keyspace: malformed repository spec")

	// ErrRepositoryNotRegistered indicates no factory is registered for a repository spec.
	ErrRepositoryNotRegistered = errors.New("keyspace: repository not registered")

	// ErrNotRepository indicates a factory produced a value that is not a Repository.
	ErrNotRepository = errors.New("keyspace: not an instance of Repository")

	// ErrRegistryClosed indicates an operation was attempted on a closed registry.
	ErrRegistryClosed = errors.New("keyspace: registry is closed")

	// ErrNilCluster indicates that a nil cluster client was provided.
	ErrNilCluster = errors.New("keyspace: cluster client cannot be nil")

	// ErrNoKeyspaces indicates that the keyspace table is empty.
	ErrNoKeyspaces = errors.New("keyspace: at least one keyspace must be configured")

	// ErrInvalidIdentifier indicates a keyspace, table or column name that is not a CQL identifier.
	ErrInvalidIdentifier = errors.New("keyspace: invalid CQL identifier")
)

// ErrorKind classifies a ConfigurationError.
type ErrorKind int

const (
	// KindKeyspaceNotConfigured: the alias is not in the keyspace table.
	KindKeyspaceNotConfigured ErrorKind = iota + 1
	// KindConnectFailed: the cluster client returned an error or the connect timed out.
	KindConnectFailed
	// KindMalformedSpec: the repository spec or alias is not well formed.
	KindMalformedSpec
	// KindRepositoryNotRegistered: no factory exists for the repository spec.
	KindRepositoryNotRegistered
	// KindNotRepository: the factory result does not satisfy the Repository capability.
	KindNotRepository
)

// Sentinel returns the sentinel error matching the kind.
func (k ErrorKind) Sentinel() error {
	switch k {
	case KindKeyspaceNotConfigured:
		return ErrKeyspaceNotConfigured
	case KindConnectFailed:
		return ErrConnectFailed
	case KindMalformedSpec:
		return ErrMalformedSpec
	case KindRepositoryNotRegistered:
		return ErrRepositoryNotRegistered
	case KindNotRepository:
		return ErrNotRepository
	}

	return nil
}

// String returns the string representation of the ErrorKind.
func (k ErrorKind) String() string {
	switch k {
	case KindKeyspaceNotConfigured:
		return "keyspace_not_configured"
	case KindConnectFailed:
		return "connect_failed"
	case KindMalformedSpec:
		return "malformed_spec"
	case KindRepositoryNotRegistered:
		return "repository_not_registered"
	case KindNotRepository:
		return "not_repository"
	}

	return "unknown"
}

// ConfigurationError reports a session or repository lookup that could not be served.
//
// Unconfigured keyspaces and driver failures share this type so existing callers
// can keep a single errors.As check. Use errors.Is with the kind sentinels, or
// inspect Kind, to tell them apart.
type ConfigurationError struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// Alias is the keyspace alias of the request, if any.
	Alias string

	// Keyspace is the physical keyspace name, if it was resolved.
	Keyspace string

	// Spec is the repository spec of the request, if any.
	Spec string

	// Cause is the underlying error (driver error, context error), if any.
	Cause error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString("keyspace: ")

	switch e.Kind {
	case KindKeyspaceNotConfigured:
		b.WriteString("session could not be created or keyspace(" + e.Alias + ") not found")
	case KindConnectFailed:
		b.WriteString("session could not be created for keyspace(" + e.Alias + ")")
		if e.Keyspace != "" {
			b.WriteString(" -> " + e.Keyspace)
		}
	case KindMalformedSpec:
		b.WriteString("malformed repository spec " + quote(e.Spec) + " for keyspace " + quote(e.Alias))
	case KindRepositoryNotRegistered:
		b.WriteString("could not find repository " + quote(e.Spec))
	case KindNotRepository:
		b.WriteString("repository " + quote(e.Spec) + " is not an instance of Repository")
	default:
		b.WriteString("configuration error")
	}

	if e.Cause != nil {
		b.WriteString(": " + e.Cause.Error())
	}

	return b.String()
}

// Unwrap returns the kind sentinel and the cause for errors.Is/As compatibility.
func (e *ConfigurationError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.Sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}

	return errs
}

func quote(s string) string {
	return "\"" + s + "\""
}
