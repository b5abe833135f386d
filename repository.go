package keyspace

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/arloliu/keyspace/adapter/cql"
	"github.com/arloliu/keyspace/record"
	"github.com/arloliu/keyspace/types"
)

// Repository is the capability every value served by Registry.RepositoryIn has:
// it is bound to one keyspace session.
type Repository interface {
	Session() cql.Session
}

// RepositoryFactory builds a repository bound to session.
//
// The result is checked against Repository at lookup time; a value that does
// not satisfy it is reported as KindNotRepository.
type RepositoryFactory func(session cql.Session) any

// ParseRepositorySpec splits a "<namespace>:<entity>" repository spec.
//
// Returns:
//   - namespace: The part before ':'
//   - entity: The part after ':'
//   - err: ConfigurationError (KindMalformedSpec) unless spec has exactly one ':'
//     with non-empty parts on both sides
func ParseRepositorySpec(spec string) (namespace, entity string, err error) {
	namespace, entity, found := strings.Cut(spec, ":")
	if !found || namespace == "" || entity == "" || strings.Contains(entity, ":") {
		return "", "", &types.ConfigurationError{Kind: types.KindMalformedSpec, Spec: spec}
	}

	return namespace, entity, nil
}

// errEmptyRecord is returned when a record has no non-nil value to write.
var errEmptyRecord = errors.New("keyspace: record has no values to insert")

// EntityRepository is a repository base that stores records in CQL tables.
//
// Embed it in entity repositories to inherit the Repository capability:
//
//	type InvoiceRepository struct {
//	    *keyspace.EntityRepository
//	}
//
//	func NewInvoiceRepository(session cql.Session) any {
//	    return &InvoiceRepository{keyspace.NewEntityRepository(session)}
//	}
type EntityRepository struct {
	session cql.Session
}

var _ Repository = (*EntityRepository)(nil)

// NewEntityRepository creates a repository bound to session.
func NewEntityRepository(session cql.Session) *EntityRepository {
	return &EntityRepository{session: session}
}

// Session returns the keyspace session the repository is bound to.
func (r *EntityRepository) Session() cql.Session {
	return r.session
}

// Insert writes the non-nil fields of a validated record as one row, in record field order.
//
// Parameters:
//   - ctx: Context for the write
//   - table: Table name
//   - rec: Validated record
//
// Returns:
//   - error: record.ErrNotValidated, types.ErrInvalidIdentifier or a driver error
func (r *EntityRepository) Insert(ctx context.Context, table string, rec *record.Record) error {
	stmt, values, err := insertStatement(table, rec)
	if err != nil {
		return err
	}

	return r.session.Query(stmt, values...).ExecContext(ctx)
}

// InsertBatch writes validated records in one logged batch. Nothing is sent
// if any record fails the checks of Insert.
func (r *EntityRepository) InsertBatch(ctx context.Context, table string, recs ...*record.Record) error {
	if len(recs) == 0 {
		return nil
	}

	batch := r.session.Batch(cql.LoggedBatch)
	for _, rec := range recs {
		stmt, values, err := insertStatement(table, rec)
		if err != nil {
			return err
		}
		batch.Query(stmt, values...)
	}

	return batch.ExecContext(ctx)
}

func insertStatement(table string, rec *record.Record) (string, []any, error) {
	if err := checkIdentifier("table", table); err != nil {
		return "", nil, err
	}
	if rec == nil || !rec.Validated() {
		return "", nil, record.ErrNotValidated
	}

	fields := rec.Fields()
	columns := make([]string, 0, len(fields))
	values := make([]any, 0, len(fields))
	for _, field := range fields {
		if !rec.Has(field) {
			continue
		}
		if err := checkIdentifier("column", field); err != nil {
			return "", nil, err
		}
		columns = append(columns, field)
		values = append(values, rec.Get(field))
	}
	if len(columns) == 0 {
		return "", nil, errEmptyRecord
	}

	stmt := "INSERT INTO " + table + " (" + strings.Join(columns, ", ") +
		") VALUES (" + strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ") + ")"

	return stmt, values, nil
}

// Get reads the row whose keyColumn equals key and validates it against schema.
//
// Returns:
//   - *record.Record: The validated record
//   - error: A driver error (such as not found), a validation error, or
//     types.ErrInvalidIdentifier
func (r *EntityRepository) Get(ctx context.Context, table string, schema *record.Schema, keyColumn string, key any) (*record.Record, error) {
	if err := checkIdentifier("table", table); err != nil {
		return nil, err
	}
	if err := checkIdentifier("column", keyColumn); err != nil {
		return nil, err
	}

	row := make(map[string]any)
	stmt := "SELECT * FROM " + table + " WHERE " + keyColumn + " = ? LIMIT 1"
	if err := r.session.Query(stmt, key).MapScanContext(ctx, row); err != nil {
		return nil, err
	}

	return record.New(schema, row)
}

// List reads up to limit rows of table and validates each one against schema.
// A limit of zero or less reads the whole table.
//
// Returns:
//   - []*record.Record: Validated records in driver order
//   - error: The first validation error, an iterator error or types.ErrInvalidIdentifier
func (r *EntityRepository) List(ctx context.Context, table string, schema *record.Schema, limit int) ([]*record.Record, error) {
	if err := checkIdentifier("table", table); err != nil {
		return nil, err
	}

	stmt := "SELECT * FROM " + table
	var args []any
	if limit > 0 {
		stmt += " LIMIT ?"
		args = append(args, limit)
	}

	iter := r.session.Query(stmt, args...).IterContext(ctx)

	var out []*record.Record
	for {
		row := make(map[string]any)
		if !iter.MapScan(row) {
			break
		}

		rec, err := record.New(schema, row)
		if err != nil {
			_ = iter.Close()
			return nil, err
		}
		out = append(out, rec)
	}

	if err := iter.Close(); err != nil {
		return nil, err
	}

	return out, nil
}

// Delete removes the row whose keyColumn equals key.
func (r *EntityRepository) Delete(ctx context.Context, table, keyColumn string, key any) error {
	if err := checkIdentifier("table", table); err != nil {
		return err
	}
	if err := checkIdentifier("column", keyColumn); err != nil {
		return err
	}

	return r.session.Query("DELETE FROM "+table+" WHERE "+keyColumn+" = ?", key).ExecContext(ctx)
}

func checkIdentifier(kind, name string) error {
	if !types.ValidIdentifier(name) {
		return fmt.Errorf("%w: %s %q", types.ErrInvalidIdentifier, kind, name)
	}

	return nil
}
