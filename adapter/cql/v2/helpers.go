package v2

import (
	gocql "github.com/apache/cassandra-gocql-driver/v2"

	"github.com/arloliu/keyspace/adapter/cql"
)

// ToGocqlConsistency converts a keyspace Consistency to gocql.Consistency.
func ToGocqlConsistency(c cql.Consistency) gocql.Consistency {
	return gocql.Consistency(c)
}

// FromGocqlConsistency converts a gocql.Consistency to a keyspace Consistency.
func FromGocqlConsistency(c gocql.Consistency) cql.Consistency {
	return cql.Consistency(c)
}

// UnwrapSession returns the underlying driver session from a session handed
// out by a registry. It reports false if s was not created by this adapter.
func UnwrapSession(s cql.Session) (*gocql.Session, bool) {
	adapter, ok := s.(*Session)
	if !ok {
		return nil, false
	}

	return adapter.session, true
}
