package v1

import (
	"context"

	"github.com/gocql/gocql"

	"github.com/arloliu/keyspace/adapter/cql"
)

// Session is a gocql v1 session bound to one keyspace.
type Session struct {
	session  *gocql.Session
	keyspace string
}

var _ cql.Session = (*Session)(nil)

// NewSession wraps a gocql session that was created for keyspace.
//
// Parameters:
//   - session: A gocql.Session whose ClusterConfig.Keyspace was keyspace
//   - keyspace: Physical keyspace the session is bound to
//
// Returns:
//   - *Session: An adapter implementing cql.Session
func NewSession(session *gocql.Session, keyspace string) *Session {
	return &Session{session: session, keyspace: keyspace}
}

// Keyspace returns the physical keyspace the session is bound to.
func (s *Session) Keyspace() string {
	return s.keyspace
}

func (s *Session) Query(stmt string, values ...any) cql.Query {
	return &Query{
		query:     s.session.Query(stmt, values...),
		statement: stmt,
		values:    values,
	}
}

func (s *Session) Batch(kind cql.BatchType) cql.Batch {
	return &Batch{
		batch:   s.session.NewBatch(gocql.BatchType(kind)),
		session: s.session,
	}
}

// Close closes the gocql session and its connection pool.
func (s *Session) Close() {
	s.session.Close()
}

// Query is a gocql v1 query that remembers its statement and bound values.
type Query struct {
	query     *gocql.Query
	statement string
	values    []any
}

func (q *Query) Consistency(c cql.Consistency) cql.Query {
	q.query = q.query.Consistency(ToGocqlConsistency(c))
	return q
}

func (q *Query) PageSize(n int) cql.Query {
	q.query = q.query.PageSize(n)
	return q
}

func (q *Query) WithTimestamp(ts int64) cql.Query {
	q.query = q.query.WithTimestamp(ts)
	return q
}

func (q *Query) ExecContext(ctx context.Context) error {
	return q.query.WithContext(ctx).Exec()
}

func (q *Query) ScanContext(ctx context.Context, dest ...any) error {
	return q.query.WithContext(ctx).Scan(dest...)
}

func (q *Query) MapScanContext(ctx context.Context, m map[string]any) error {
	return q.query.WithContext(ctx).MapScan(m)
}

func (q *Query) IterContext(ctx context.Context) cql.Iter {
	return &Iter{iter: q.query.WithContext(ctx).Iter()}
}

func (q *Query) Statement() string {
	return q.statement
}

func (q *Query) Values() []any {
	return q.values
}

// Release returns the underlying query to the gocql pool. The query must not
// be used afterwards.
func (q *Query) Release() {
	q.query.Release()
}

// Batch is a gocql v1 batch executed on the session that created it.
type Batch struct {
	batch   *gocql.Batch
	session *gocql.Session
	entries []cql.BatchEntry
}

func (b *Batch) Query(stmt string, args ...any) cql.Batch {
	b.batch.Query(stmt, args...)
	b.entries = append(b.entries, cql.BatchEntry{Statement: stmt, Args: args})

	return b
}

func (b *Batch) Consistency(c cql.Consistency) cql.Batch {
	b.batch.SetConsistency(ToGocqlConsistency(c))
	return b
}

func (b *Batch) WithTimestamp(ts int64) cql.Batch {
	b.batch.WithTimestamp(ts)
	return b
}

func (b *Batch) ExecContext(ctx context.Context) error {
	return b.session.ExecuteBatch(b.batch.WithContext(ctx))
}

func (b *Batch) Size() int {
	return len(b.entries)
}

func (b *Batch) Statements() []cql.BatchEntry {
	return b.entries
}

// Iter is a gocql v1 iterator. A zero Iter behaves as an empty result.
type Iter struct {
	iter *gocql.Iter
}

func (i *Iter) Scan(dest ...any) bool {
	return i.iter != nil && i.iter.Scan(dest...)
}

func (i *Iter) MapScan(m map[string]any) bool {
	return i.iter != nil && i.iter.MapScan(m)
}

func (i *Iter) SliceMap() ([]map[string]any, error) {
	if i.iter == nil {
		return nil, nil
	}

	return i.iter.SliceMap()
}

func (i *Iter) PageState() []byte {
	if i.iter == nil {
		return nil
	}

	return i.iter.PageState()
}

func (i *Iter) NumRows() int {
	if i.iter == nil {
		return 0
	}

	return i.iter.NumRows()
}

func (i *Iter) Close() error {
	if i.iter == nil {
		return nil
	}

	return i.iter.Close()
}
