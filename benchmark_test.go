package keyspace_test

import (
	"context"
	"testing"

	"github.com/arloliu/keyspace"
	"github.com/arloliu/keyspace/adapter/cql"
	"github.com/arloliu/keyspace/record"
	"github.com/arloliu/keyspace/test/testutil"
)

// =============================================================================
// Benchmark Infrastructure
// =============================================================================

type benchRepository struct {
	*keyspace.EntityRepository
}

func newBenchRegistry(b *testing.B) *keyspace.Registry {
	b.Helper()

	table, err := keyspace.NewKeyspaceTable(
		keyspace.Keyspace{Alias: keyspace.DefaultKeyspace, Name: "bench_main"},
		keyspace.Keyspace{Alias: "audit", Name: "bench_audit"},
	)
	if err != nil {
		b.Fatal(err)
	}

	reg, err := keyspace.NewRegistry(testutil.NewMockCluster(), table,
		keyspace.WithRepository("bench", "entity", func(s cql.Session) any {
			return &benchRepository{keyspace.NewEntityRepository(s)}
		}),
	)
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { _ = reg.Close() })

	if err := reg.Warm(context.Background()); err != nil {
		b.Fatal(err)
	}

	return reg
}

var benchSchema = record.NewSchema("bench",
	record.Required("id", "email"),
	record.Optional("nickname"),
	record.Default("tags", []any{"new"}),
	record.Default("status", "active"),
	record.Type("id", record.TypeNumeric),
	record.Type("email", record.TypeString),
	record.Type("tags", record.TypeArray),
	record.Allowed("status", "active", "inactive"),
)

// =============================================================================
// Registry Benchmarks
// =============================================================================

// BenchmarkRegistrySessionCached measures a cache hit on an open session.
func BenchmarkRegistrySessionCached(b *testing.B) {
	reg := newBenchRegistry(b)
	ctx := context.Background()

	b.ResetTimer()
	b.ReportAllocs()

	for b.Loop() {
		_, _ = reg.Session(ctx, keyspace.DefaultKeyspace)
	}
}

// BenchmarkRegistrySessionCachedParallel measures cache hits under contention.
func BenchmarkRegistrySessionCachedParallel(b *testing.B) {
	reg := newBenchRegistry(b)
	ctx := context.Background()

	b.ResetTimer()
	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = reg.Session(ctx, "audit")
		}
	})
}

// BenchmarkRegistryRepositoryCached measures a cached repository lookup,
// including spec parsing.
func BenchmarkRegistryRepositoryCached(b *testing.B) {
	reg := newBenchRegistry(b)
	ctx := context.Background()

	if _, err := reg.Repository(ctx, "bench:entity"); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for b.Loop() {
		_, _ = reg.Repository(ctx, "bench:entity")
	}
}

// BenchmarkRepositoryAs measures the typed lookup helper.
func BenchmarkRepositoryAs(b *testing.B) {
	reg := newBenchRegistry(b)
	ctx := context.Background()

	b.ResetTimer()
	b.ReportAllocs()

	for b.Loop() {
		_, _ = keyspace.RepositoryAs[*benchRepository](ctx, reg, "bench:entity", "audit")
	}
}

// =============================================================================
// Record Benchmarks
// =============================================================================

// BenchmarkRecordNew measures normalization plus validation of a small record.
func BenchmarkRecordNew(b *testing.B) {
	raw := map[string]any{
		"id":    "42",
		"email": "ada@example.com",
		"tags":  []any{"admin"},
	}

	b.ResetTimer()
	b.ReportAllocs()

	for b.Loop() {
		_, _ = record.New(benchSchema, raw)
	}
}

// BenchmarkRecordValidate measures re-validation of an existing record.
func BenchmarkRecordValidate(b *testing.B) {
	rec := record.MustNew(benchSchema, map[string]any{"id": 42, "email": "ada@example.com"})

	b.ResetTimer()
	b.ReportAllocs()

	for b.Loop() {
		rec.Set("id", 42)
		_ = rec.Validate()
	}
}

// BenchmarkEntityRepositoryInsert measures statement building for Insert.
func BenchmarkEntityRepositoryInsert(b *testing.B) {
	repo := keyspace.NewEntityRepository(testutil.NewMockSession("bench_main"))
	rec := record.MustNew(benchSchema, map[string]any{"id": 1, "email": "ada@example.com"})
	ctx := context.Background()

	b.ResetTimer()
	b.ReportAllocs()

	for b.Loop() {
		_ = repo.Insert(ctx, "users", rec)
	}
}
