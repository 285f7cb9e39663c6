package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// SchemaVersion is recorded in schema_meta after a successful migration.
const SchemaVersion = 2

// Migrate runs all schema migrations. Statements are idempotent and re-run
// on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateLegacyState(db); err != nil {
		return fmt.Errorf("migrating legacy state table: %w", err)
	}
	if _, err := db.Exec(`INSERT INTO schema_meta (id, version, migrated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET version = excluded.version, migrated_at = excluded.migrated_at`,
		SchemaVersion, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("recording schema version: %w", err)
	}
	return nil
}

// migrateLegacyState copies rows from the version 1 `state(bucket, payload)`
// table into kv_entries and drops it. Keys already present in kv_entries win.
func migrateLegacyState(db *sql.DB) error {
	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'state'`).Scan(&name)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("looking up state table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("starting migration transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.Exec(`INSERT OR IGNORE INTO kv_entries (key, value, updated_at)
		SELECT bucket, CAST(payload AS TEXT), ? FROM state`, now); err != nil {
		return fmt.Errorf("copying state rows: %w", err)
	}
	if _, err := tx.Exec(`DROP TABLE state`); err != nil {
		return fmt.Errorf("dropping state table: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing migration: %w", err)
	}
	committed = true
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS kv_entries (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS schema_meta (
		id          INTEGER PRIMARY KEY CHECK (id = 1),
		version     INTEGER NOT NULL,
		migrated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_kv_entries_updated ON kv_entries(updated_at)`,
}
