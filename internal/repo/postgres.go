package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/travelbook/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup. Begin on a pgx.Tx opens a
// savepoint, so batches still nest inside the test transaction.
type db interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// pgKV is the Postgres implementation of KV. Values live in a JSONB column.
type pgKV struct {
	db db
}

// NewPostgresKV constructs a KV backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPostgresKV(db db) KV {
	return &pgKV{db: db}
}

const pgUpsert = `
	INSERT INTO kv_store (key, value)
	VALUES (@key, @value::jsonb)
	ON CONFLICT (key) DO UPDATE
	SET value      = EXCLUDED.value,
	    updated_at = now()`

// Get returns the stored document as text.
func (r *pgKV) Get(ctx context.Context, key string) ([]byte, error) {
	const q = `SELECT value::text FROM kv_store WHERE key = @key`

	var value string
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"key": key}).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("repo.pgKV.Get %q: %w", key, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("repo.pgKV.Get: %w", err)
	}
	return []byte(value), nil
}

// Write applies the batch inside a transaction.
func (r *pgKV) Write(ctx context.Context, b Batch) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		for _, k := range b.sortedKeys() {
			args := pgx.NamedArgs{"key": k, "value": string(b.Puts[k])}
			if _, err := tx.Exec(ctx, pgUpsert, args); err != nil {
				return fmt.Errorf("put %q: %w", k, err)
			}
		}
		if len(b.Deletes) > 0 {
			const q = `DELETE FROM kv_store WHERE key = ANY(@keys)`
			if _, err := tx.Exec(ctx, q, pgx.NamedArgs{"keys": b.Deletes}); err != nil {
				return fmt.Errorf("delete: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("repo.pgKV.Write: %w", err)
	}
	return nil
}
