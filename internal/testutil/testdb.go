package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/shutterflow/internal/db"
	"github.com/alexanderramin/shutterflow/internal/kv"
	"github.com/alexanderramin/shutterflow/internal/store"
	"go.uber.org/zap/zaptest"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// NewTestKV returns a kv store over a fresh in-memory SQLite database.
func NewTestKV(t *testing.T) *kv.SQLiteStore {
	t.Helper()
	return kv.NewSQLite(NewTestDB(t))
}

// NewTestStore returns a store over backend with a test logger. A nil backend
// gets a fresh in-memory map.
func NewTestStore(t *testing.T, backend kv.Store, opts ...store.Option) *store.Store {
	t.Helper()
	if backend == nil {
		backend = kv.NewMemory()
	}
	opts = append([]store.Option{store.WithLogger(zaptest.NewLogger(t))}, opts...)
	return store.New(backend, opts...)
}
