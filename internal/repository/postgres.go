package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS counters (
		key   TEXT PRIMARY KEY,
		value BIGINT NOT NULL DEFAULT 0 CHECK (value >= 0)
	)
`

// PostgresRepository implements the counter store on PostgreSQL
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL counter repository
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the counters table if it does not exist
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("repository: failed to create counters table: %w", err)
	}
	return nil
}

// IncrementAndGet adds one to the counter and returns the new value in a
// single statement, creating the row on first use
func (r *PostgresRepository) IncrementAndGet(ctx context.Context, key string) (uint64, error) {
	sql := `
		INSERT INTO counters (key, value) VALUES ($1, 1)
		ON CONFLICT (key) DO UPDATE SET value = counters.value + 1
		RETURNING value
	`

	var value int64
	if err := r.db.QueryRow(ctx, sql, key).Scan(&value); err != nil {
		return 0, fmt.Errorf("repository: failed to increment counter %q: %w", key, err)
	}

	return uint64(value), nil
}

// Get returns the current counter value, or zero if it was never incremented
func (r *PostgresRepository) Get(ctx context.Context, key string) (uint64, error) {
	var value int64
	err := r.db.QueryRow(ctx, `SELECT value FROM counters WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("repository: failed to read counter %q: %w", key, err)
	}

	return uint64(value), nil
}
