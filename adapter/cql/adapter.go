package cql

import (
	"context"
)

// BatchType represents the type of batch operation.
type BatchType byte

// Batch types matching gocql.
const (
	LoggedBatch   BatchType = 0
	UnloggedBatch BatchType = 1
	CounterBatch  BatchType = 2
)

// Consistency represents the Cassandra consistency level.
type Consistency uint16

// Consistency levels matching gocql.
const (
	Any         Consistency = 0x00
	One         Consistency = 0x01
	Two         Consistency = 0x02
	Three       Consistency = 0x03
	Quorum      Consistency = 0x04
	All         Consistency = 0x05
	LocalQuorum Consistency = 0x06
	EachQuorum  Consistency = 0x07
	LocalOne    Consistency = 0x0A
)

// ParseConsistency converts a consistency name such as "LOCAL_QUORUM" to its level.
//
// Returns:
//   - Consistency: The parsed level
//   - bool: false if the name is unknown
func ParseConsistency(name string) (Consistency, bool) {
	switch name {
	case "ANY":
		return Any, true
	case "ONE":
		return One, true
	case "TWO":
		return Two, true
	case "THREE":
		return Three, true
	case "QUORUM":
		return Quorum, true
	case "ALL":
		return All, true
	case "LOCAL_QUORUM":
		return LocalQuorum, true
	case "EACH_QUORUM":
		return EachQuorum, true
	case "LOCAL_ONE":
		return LocalOne, true
	}

	return 0, false
}

// Session represents a live, keyspace-bound session from the underlying driver.
//
// Sessions are handed out by a keyspace registry; callers must not close them.
// The registry closes every session it created when it is closed.
type Session interface {
	// Keyspace returns the physical keyspace the session is bound to.
	Keyspace() string

	// Query creates a new query for the given statement.
	//
	// Parameters:
	//   - stmt: CQL statement with ? placeholders
	//   - values: Values to bind to placeholders
	//
	// Returns:
	//   - Query: A query builder
	Query(stmt string, values ...any) Query

	// Batch creates a new batch of the given type.
	//
	// Parameters:
	//   - kind: Type of batch
	//
	// Returns:
	//   - Batch: A batch builder
	Batch(kind BatchType) Batch

	// Close terminates the session.
	Close()
}

// Query represents a raw CQL query from the underlying driver.
type Query interface {
	// Consistency sets the consistency level.
	Consistency(c Consistency) Query

	// PageSize sets the page size.
	PageSize(n int) Query

	// WithTimestamp sets the write timestamp.
	WithTimestamp(ts int64) Query

	// ExecContext executes the query with context.
	ExecContext(ctx context.Context) error

	// ScanContext executes and scans a single row with context.
	ScanContext(ctx context.Context, dest ...any) error

	// MapScanContext executes and scans a single row into a map with context.
	MapScanContext(ctx context.Context, m map[string]any) error

	// IterContext returns an iterator for results with context.
	IterContext(ctx context.Context) Iter

	// Statement returns the CQL statement.
	Statement() string

	// Values returns the bound values.
	Values() []any

	// Release returns the query to a pool (if applicable).
	Release()
}

// Batch represents a raw CQL batch from the underlying driver.
type Batch interface {
	// Query adds a statement to the batch.
	Query(stmt string, args ...any) Batch

	// Consistency sets the consistency level.
	Consistency(c Consistency) Batch

	// WithTimestamp sets the write timestamp for all statements.
	WithTimestamp(ts int64) Batch

	// ExecContext executes the batch with context.
	ExecContext(ctx context.Context) error

	// Size returns the number of statements in the batch.
	Size() int

	// Statements returns all statements in the batch.
	Statements() []BatchEntry
}

// BatchEntry represents a single statement in a batch.
type BatchEntry struct {
	Statement string
	Args      []any
}

// Iter represents a raw CQL iterator from the underlying driver.
type Iter interface {
	// Scan reads the next row.
	Scan(dest ...any) bool

	// MapScan reads the next row into a map.
	MapScan(m map[string]any) bool

	// SliceMap reads all rows into a slice of maps.
	SliceMap() ([]map[string]any, error)

	// PageState returns the pagination token.
	PageState() []byte

	// NumRows returns the number of rows in the current page.
	NumRows() int

	// Close closes the iterator.
	Close() error
}
