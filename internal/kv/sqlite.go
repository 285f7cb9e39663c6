package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/shutterflow/internal/db"
)

// SQLiteStore keeps entries in the kv_entries table of a local SQLite file.
type SQLiteStore struct {
	db  *sql.DB
	uow db.UnitOfWork
}

// OpenSQLite opens (and migrates) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	database, err := db.OpenDB(path)
	if err != nil {
		return nil, err
	}
	return NewSQLite(database), nil
}

// NewSQLite wraps an already migrated database.
func NewSQLite(database *sql.DB) *SQLiteStore {
	return NewSQLiteWithUoW(database, db.NewSQLiteUnitOfWork(database))
}

// NewSQLiteWithUoW is NewSQLite with a caller-supplied unit of work for the
// multi-key writes.
func NewSQLiteWithUoW(database *sql.DB, uow db.UnitOfWork) *SQLiteStore {
	return &SQLiteStore{db: database, uow: uow}
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading key %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	return upsert(ctx, s.db, key, value)
}

func (s *SQLiteStore) SetMany(ctx context.Context, entries map[string]string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		for k, v := range entries {
			if err := upsert(ctx, tx, k, v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLiteStore) Remove(ctx context.Context, keys ...string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		for _, k := range keys {
			if _, err := tx.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, k); err != nil {
				return fmt.Errorf("removing key %s: %w", k, err)
			}
		}
		return nil
	})
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func upsert(ctx context.Context, q db.DBTX, key, value string) error {
	_, err := q.ExecContext(ctx, `INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("writing key %s: %w", key, err)
	}
	return nil
}
