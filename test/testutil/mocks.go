package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/arloliu/keyspace/adapter/cql"
)

// ExecutedStatement is a statement a mock session ran.
type ExecutedStatement struct {
	Statement string
	Values    []any
}

// MockSession is a mock implementation of cql.Session for testing.
type MockSession struct {
	mu         sync.RWMutex
	keyspace   string
	closed     bool
	closeCount int
	queries    map[string]*MockQuery
	batches    []*MockBatch
	executed   []ExecutedStatement

	// Hooks for custom behavior
	OnQuery func(stmt string, values ...any) cql.Query
	OnClose func()
}

// Compile-time assertion that MockSession implements cql.Session.
var _ cql.Session = (*MockSession)(nil)

// NewMockSession creates a new mock session bound to keyspace.
func NewMockSession(keyspace string) *MockSession {
	return &MockSession{
		keyspace: keyspace,
		queries:  make(map[string]*MockQuery),
	}
}

// Keyspace returns the keyspace the session was opened for.
func (m *MockSession) Keyspace() string {
	return m.keyspace
}

// Query returns the mock query registered for stmt, or a new one.
func (m *MockSession) Query(stmt string, values ...any) cql.Query {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.OnQuery != nil {
		return m.OnQuery(stmt, values...)
	}

	if q, ok := m.queries[stmt]; ok {
		q.mu.Lock()
		q.values = values
		q.mu.Unlock()

		return q
	}

	q := NewMockQuery(stmt, values...)
	q.session = m
	m.queries[stmt] = q

	return q
}

// ExpectQuery registers and returns the mock query served for stmt.
func (m *MockSession) ExpectQuery(stmt string) *MockQuery {
	m.mu.Lock()
	defer m.mu.Unlock()

	q := NewMockQuery(stmt)
	q.session = m
	m.queries[stmt] = q

	return q
}

// Batch returns a mock batch of the given type.
func (m *MockSession) Batch(kind cql.BatchType) cql.Batch {
	m.mu.Lock()
	defer m.mu.Unlock()

	b := NewMockBatch(kind)
	b.session = m
	m.batches = append(m.batches, b)

	return b
}

// Close closes the session.
func (m *MockSession) Close() {
	m.mu.Lock()
	m.closed = true
	m.closeCount++
	hook := m.OnClose
	m.mu.Unlock()

	if hook != nil {
		hook()
	}
}

// IsClosed reports whether Close was called.
func (m *MockSession) IsClosed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.closed
}

// CloseCount returns how many times Close was called.
func (m *MockSession) CloseCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.closeCount
}

// Executed returns the statements executed so far, in order.
func (m *MockSession) Executed() []ExecutedStatement {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]ExecutedStatement(nil), m.executed...)
}

func (m *MockSession) record(stmt string, values []any) {
	if m == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.executed = append(m.executed, ExecutedStatement{Statement: stmt, Values: values})
}

// MockQuery is a mock implementation of cql.Query for testing.
type MockQuery struct {
	mu      sync.RWMutex
	session *MockSession
	stmt    string
	values  []any

	// Configuration
	consistency cql.Consistency
	pageSize    int
	timestamp   int64

	// Return values
	execErr  error
	scanErr  error
	scanData []any
	iter     cql.Iter
	mapData  map[string]any
}

// Compile-time assertion that MockQuery implements cql.Query.
var _ cql.Query = (*MockQuery)(nil)

// NewMockQuery creates a new mock query.
func NewMockQuery(stmt string, values ...any) *MockQuery {
	return &MockQuery{
		stmt:   stmt,
		values: values,
	}
}

// Statement returns the query statement.
func (m *MockQuery) Statement() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.stmt
}

// Values returns the bound values.
func (m *MockQuery) Values() []any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.values
}

// Consistency sets the consistency level.
func (m *MockQuery) Consistency(c cql.Consistency) cql.Query {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.consistency = c

	return m
}

// GetConsistency returns the consistency level set on the query.
func (m *MockQuery) GetConsistency() cql.Consistency {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.consistency
}

// PageSize sets the page size.
func (m *MockQuery) PageSize(n int) cql.Query {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pageSize = n

	return m
}

// WithTimestamp sets the write timestamp.
func (m *MockQuery) WithTimestamp(ts int64) cql.Query {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.timestamp = ts

	return m
}

// ExecContext records the statement and returns the configured error.
func (m *MockQuery) ExecContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.RLock()
	stmt, values, err := m.stmt, m.values, m.execErr
	m.mu.RUnlock()

	if err == nil {
		m.session.record(stmt, values)
	}

	return err
}

// ScanContext copies the configured scan data into dest.
func (m *MockQuery) ScanContext(_ context.Context, dest ...any) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.scanErr != nil {
		return m.scanErr
	}

	for i := 0; i < len(dest) && i < len(m.scanData); i++ {
		copyValue(dest[i], m.scanData[i])
	}

	return nil
}

// MapScanContext copies the configured map data into dest.
func (m *MockQuery) MapScanContext(_ context.Context, dest map[string]any) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.scanErr != nil {
		return m.scanErr
	}

	for k, v := range m.mapData {
		dest[k] = v
	}

	return nil
}

// IterContext returns the configured iterator, or an empty one.
func (m *MockQuery) IterContext(_ context.Context) cql.Iter {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.iter != nil {
		return m.iter
	}

	return NewMockIter()
}

// Release is a no-op.
func (m *MockQuery) Release() {}

// SetExecError sets the error returned by ExecContext.
func (m *MockQuery) SetExecError(err error) *MockQuery {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.execErr = err

	return m
}

// SetScanData sets the values copied by ScanContext.
func (m *MockQuery) SetScanData(data ...any) *MockQuery {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.scanData = data

	return m
}

// SetScanError sets the error returned by ScanContext and MapScanContext.
func (m *MockQuery) SetScanError(err error) *MockQuery {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.scanErr = err

	return m
}

// SetMapData sets the row copied by MapScanContext.
func (m *MockQuery) SetMapData(data map[string]any) *MockQuery {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.mapData = data

	return m
}

// SetIter sets the iterator returned by IterContext.
func (m *MockQuery) SetIter(iter cql.Iter) *MockQuery {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.iter = iter

	return m
}

// MockBatch is a mock implementation of cql.Batch for testing.
type MockBatch struct {
	mu          sync.RWMutex
	session     *MockSession
	kind        cql.BatchType
	entries     []cql.BatchEntry
	consistency cql.Consistency
	timestamp   int64
	execErr     error
}

// Compile-time assertion that MockBatch implements cql.Batch.
var _ cql.Batch = (*MockBatch)(nil)

// NewMockBatch creates a new mock batch.
func NewMockBatch(kind cql.BatchType) *MockBatch {
	return &MockBatch{kind: kind}
}

// Query adds a statement to the batch.
func (m *MockBatch) Query(stmt string, args ...any) cql.Batch {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, cql.BatchEntry{Statement: stmt, Args: args})

	return m
}

// Consistency sets the consistency level.
func (m *MockBatch) Consistency(c cql.Consistency) cql.Batch {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.consistency = c

	return m
}

// WithTimestamp sets the write timestamp.
func (m *MockBatch) WithTimestamp(ts int64) cql.Batch {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.timestamp = ts

	return m
}

// ExecContext records every statement and returns the configured error.
func (m *MockBatch) ExecContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.RLock()
	entries, err := m.entries, m.execErr
	m.mu.RUnlock()

	if err != nil {
		return err
	}
	for _, e := range entries {
		m.session.record(e.Statement, e.Args)
	}

	return nil
}

// Size returns the number of statements.
func (m *MockBatch) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}

// Statements returns the statements in the batch.
func (m *MockBatch) Statements() []cql.BatchEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]cql.BatchEntry(nil), m.entries...)
}

// SetExecError sets the error returned by ExecContext.
func (m *MockBatch) SetExecError(err error) *MockBatch {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.execErr = err

	return m
}

// MockIter is a mock implementation of cql.Iter for testing.
type MockIter struct {
	mu        sync.Mutex
	rows      [][]any
	mapRows   []map[string]any
	index     int
	closeErr  error
	pageState []byte
}

// Compile-time assertion that MockIter implements cql.Iter.
var _ cql.Iter = (*MockIter)(nil)

// NewMockIter creates a new mock iterator.
func NewMockIter() *MockIter {
	return &MockIter{}
}

// Scan reads the next row.
func (m *MockIter) Scan(dest ...any) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.index >= len(m.rows) {
		return false
	}

	row := m.rows[m.index]
	for i := 0; i < len(dest) && i < len(row); i++ {
		copyValue(dest[i], row[i])
	}
	m.index++

	return true
}

// MapScan reads the next row into a map.
func (m *MockIter) MapScan(dest map[string]any) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.index >= len(m.mapRows) {
		return false
	}

	for k, v := range m.mapRows[m.index] {
		dest[k] = v
	}
	m.index++

	return true
}

// SliceMap returns all remaining map rows.
func (m *MockIter) SliceMap() ([]map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closeErr != nil {
		return nil, m.closeErr
	}
	if m.index >= len(m.mapRows) {
		return nil, nil
	}

	remaining := m.mapRows[m.index:]
	m.index = len(m.mapRows)

	return remaining, nil
}

// PageState returns the configured page state.
func (m *MockIter) PageState() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.pageState
}

// NumRows returns the number of rows.
func (m *MockIter) NumRows() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return max(len(m.rows), len(m.mapRows))
}

// Close returns the configured close error.
func (m *MockIter) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.closeErr
}

// AddRow adds a positional row.
func (m *MockIter) AddRow(values ...any) *MockIter {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rows = append(m.rows, values)

	return m
}

// AddMapRow adds a named row.
func (m *MockIter) AddMapRow(row map[string]any) *MockIter {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.mapRows = append(m.mapRows, row)

	return m
}

// SetCloseError sets the error returned by Close and SliceMap.
func (m *MockIter) SetCloseError(err error) *MockIter {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closeErr = err

	return m
}

// SetPageState sets the page state.
func (m *MockIter) SetPageState(state []byte) *MockIter {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pageState = state

	return m
}

// MockCluster is a mock cluster client that opens MockSessions.
//
// It satisfies keyspace.ClusterClient and io.Closer.
type MockCluster struct {
	mu       sync.Mutex
	connects map[string]int
	errs     map[string]error
	sessions []*MockSession
	closed   bool

	// Delay holds every Connect for the given duration, or until ctx ends.
	Delay time.Duration

	// Gate, when set, holds every Connect until it is closed or ctx ends.
	Gate chan struct{}

	// OnConnect replaces the default session constructor.
	OnConnect func(ctx context.Context, keyspace string) (cql.Session, error)
}

// NewMockCluster creates a new mock cluster.
func NewMockCluster() *MockCluster {
	return &MockCluster{
		connects: make(map[string]int),
		errs:     make(map[string]error),
	}
}

// Connect counts the call, waits for Delay and Gate, then returns a new
// MockSession or the error configured for keyspace.
func (m *MockCluster) Connect(ctx context.Context, keyspace string) (cql.Session, error) {
	m.mu.Lock()
	m.connects[keyspace]++
	gate, delay := m.Gate, m.Delay
	m.mu.Unlock()

	if delay > 0 {
		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		}
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.mu.Lock()
	err := m.errs[keyspace]
	hook := m.OnConnect
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if hook != nil {
		return hook(ctx, keyspace)
	}

	session := NewMockSession(keyspace)

	m.mu.Lock()
	m.sessions = append(m.sessions, session)
	m.mu.Unlock()

	return session, nil
}

// SetConnectError makes Connect fail for keyspace. A nil err clears it.
func (m *MockCluster) SetConnectError(keyspace string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err == nil {
		delete(m.errs, keyspace)
		return
	}
	m.errs[keyspace] = err
}

// ConnectCount returns the number of Connect calls for keyspace.
func (m *MockCluster) ConnectCount(keyspace string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.connects[keyspace]
}

// TotalConnects returns the number of Connect calls for all keyspaces.
func (m *MockCluster) TotalConnects() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := 0
	for _, n := range m.connects {
		total += n
	}

	return total
}

// Sessions returns the sessions opened so far.
func (m *MockCluster) Sessions() []*MockSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]*MockSession(nil), m.sessions...)
}

// Close marks the cluster closed.
func (m *MockCluster) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true

	return nil
}

// IsClosed reports whether Close was called.
func (m *MockCluster) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.closed
}

// copyValue copies a value to a destination pointer.
func copyValue(dest, src any) {
	switch d := dest.(type) {
	case *string:
		if s, ok := src.(string); ok {
			*d = s
		}
	case *int:
		if s, ok := src.(int); ok {
			*d = s
		}
	case *int64:
		if s, ok := src.(int64); ok {
			*d = s
		}
	case *float64:
		if s, ok := src.(float64); ok {
			*d = s
		}
	case *bool:
		if s, ok := src.(bool); ok {
			*d = s
		}
	case *[]byte:
		if s, ok := src.([]byte); ok {
			*d = s
		}
	case *any:
		*d = src
	}
}
