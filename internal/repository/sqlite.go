package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS counters (
		key   TEXT PRIMARY KEY,
		value INTEGER NOT NULL DEFAULT 0 CHECK (value >= 0)
	)
`

// SQLiteRepository implements the counter store on an embedded SQLite file
type SQLiteRepository struct {
	db *sql.DB
}

// OpenSQLiteRepository opens (creating if needed) the database at path and
// prepares the counters table. Use ":memory:" for a throwaway database.
func OpenSQLiteRepository(ctx context.Context, path string) (*SQLiteRepository, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("repository: failed to create database directory: %w", err)
		}
	}

	db, err := openSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to open sqlite database: %w", err)
	}
	// A single connection serialises writers, so the increment never sees
	// SQLITE_BUSY, and keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("repository: failed to create counters table: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// IncrementAndGet adds one to the counter and returns the new value
func (r *SQLiteRepository) IncrementAndGet(ctx context.Context, key string) (uint64, error) {
	query := `
		INSERT INTO counters (key, value) VALUES (?, 1)
		ON CONFLICT (key) DO UPDATE SET value = value + 1
		RETURNING value
	`

	var value int64
	if err := r.db.QueryRowContext(ctx, query, key).Scan(&value); err != nil {
		return 0, fmt.Errorf("repository: failed to increment counter %q: %w", key, err)
	}

	return uint64(value), nil
}

// Get returns the current counter value, or zero if it was never incremented
func (r *SQLiteRepository) Get(ctx context.Context, key string) (uint64, error) {
	var value int64
	err := r.db.QueryRowContext(ctx, `SELECT value FROM counters WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("repository: failed to read counter %q: %w", key, err)
	}

	return uint64(value), nil
}

// Close releases the database handle
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
