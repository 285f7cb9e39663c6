package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"kv_entries", "schema_meta"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}

	var idx string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name='idx_kv_entries_updated'`).Scan(&idx)
	require.NoError(t, err)
}

func TestMigrate_RecordsSchemaVersion(t *testing.T) {
	db := openTestDB(t)

	var version int
	require.NoError(t, db.QueryRow(`SELECT version FROM schema_meta WHERE id = 1`).Scan(&version))
	assert.Equal(t, SchemaVersion, version)
}

func TestMigrate_CopiesLegacyStateTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.db")

	raw, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = raw.Exec(`CREATE TABLE state (bucket TEXT PRIMARY KEY, payload BLOB NOT NULL)`)
	require.NoError(t, err)
	_, err = raw.Exec(`INSERT INTO state (bucket, payload) VALUES ('projects', '[]'), ('favoriteProjects', '["p1"]')`)
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	db, err := OpenDB(path)
	require.NoError(t, err)
	defer db.Close()

	var value string
	require.NoError(t, db.QueryRow(`SELECT value FROM kv_entries WHERE key = 'favoriteProjects'`).Scan(&value))
	assert.Equal(t, `["p1"]`, value)

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='state'`).Scan(&name)
	assert.ErrorIs(t, err, sql.ErrNoRows, "legacy table should be dropped")
}

func TestOpenDB_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "data.db")
	db, err := OpenDB(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())
	assert.FileExists(t, path)
}
