package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" driver for database/sql

	"github.com/pkordes/travelbook/internal/domain"
	"github.com/pkordes/travelbook/migrations"
)

// OpenSQLite opens (creating if needed) the database file at path, enables
// WAL mode and applies the embedded sqlite migrations.
// ":memory:" opens a private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("repo.OpenSQLite: create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("repo.OpenSQLite: open: %w", err)
	}
	// One writer at a time; this also keeps ":memory:" on a single connection.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode = WAL", "PRAGMA busy_timeout = 5000"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("repo.OpenSQLite: %s: %w", pragma, err)
		}
	}

	if err := Migrate(ctx, db, goose.DialectSQLite3); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate applies every pending migration for the dialect.
func Migrate(ctx context.Context, db *sql.DB, dialect goose.Dialect) error {
	fsys := migrations.Postgres
	if dialect == goose.DialectSQLite3 {
		fsys = migrations.SQLite
	}
	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("repo.Migrate: create goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("repo.Migrate: up: %w", err)
	}
	return nil
}

// sqliteKV is the SQLite implementation of KV.
type sqliteKV struct {
	db *sql.DB
}

// NewSQLiteKV constructs a KV over a database opened with OpenSQLite.
func NewSQLiteKV(db *sql.DB) KV {
	return &sqliteKV{db: db}
}

const sqliteUpsert = `
	INSERT INTO kv_store (key, value, updated_at)
	VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT (key) DO UPDATE
	SET value      = excluded.value,
	    updated_at = excluded.updated_at`

func (r *sqliteKV) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("repo.sqliteKV.Get %q: %w", key, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("repo.sqliteKV.Get: %w", err)
	}
	return []byte(value), nil
}

func (r *sqliteKV) Write(ctx context.Context, b Batch) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repo.sqliteKV.Write: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, k := range b.sortedKeys() {
		if _, err = tx.ExecContext(ctx, sqliteUpsert, k, string(b.Puts[k])); err != nil {
			return fmt.Errorf("repo.sqliteKV.Write: put %q: %w", k, err)
		}
	}
	if len(b.Deletes) > 0 {
		q, args := deleteQuery(b.Deletes)
		if _, err = tx.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("repo.sqliteKV.Write: delete: %w", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("repo.sqliteKV.Write: commit: %w", err)
	}
	return nil
}

func deleteQuery(keys []string) (string, []any) {
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	marks := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
	return "DELETE FROM kv_store WHERE key IN (" + marks + ")", args
}
