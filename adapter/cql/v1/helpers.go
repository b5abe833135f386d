package v1

import (
	"github.com/gocql/gocql"

	"github.com/arloliu/keyspace/adapter/cql"
)

// ToGocqlConsistency converts a keyspace Consistency to gocql.Consistency.
//
// Example:
//
//	cluster := gocql.NewCluster("127.0.0.1")
//	cluster.Consistency = v1.ToGocqlConsistency(cql.Quorum)
func ToGocqlConsistency(c cql.Consistency) gocql.Consistency {
	return gocql.Consistency(c)
}

// FromGocqlConsistency converts a gocql.Consistency to a keyspace Consistency.
func FromGocqlConsistency(c gocql.Consistency) cql.Consistency {
	return cql.Consistency(c)
}

// UnwrapSession returns the underlying gocql.Session from a session handed out by a registry.
//
// Returns:
//   - *gocql.Session: The underlying session
//   - bool: false if s was not created by this adapter
//
// Example:
//
//	session, _ := reg.Session(ctx, "default")
//	if raw, ok := v1.UnwrapSession(session); ok {
//	    meta, _ := raw.KeyspaceMetadata("app_main")
//	}
func UnwrapSession(s cql.Session) (*gocql.Session, bool) {
	adapter, ok := s.(*Session)
	if !ok {
		return nil, false
	}

	return adapter.session, true
}
