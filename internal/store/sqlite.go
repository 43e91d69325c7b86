package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// OpenSQLite opens (or creates) the SQLite database at path.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

// SQLite implements Store over an embedded SQLite key-value table. It is
// the default durable backend: local, serverless, survives restarts.
type SQLite struct {
	db *sql.DB
}

// NewSQLite creates a SQLite store and runs its migration.
func NewSQLite(db *sql.DB) (*SQLite, error) {
	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	query := `
    CREATE TABLE IF NOT EXISTS records (
        key TEXT PRIMARY KEY,
        value TEXT NOT NULL
    );`
	_, err := s.db.ExecContext(context.Background(), query)
	return err
}

func (s *SQLite) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(
		ctx,
		`SELECT value FROM records WHERE key = ?`,
		key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return value, err
}

func (s *SQLite) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO records (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *SQLite) Remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(
		ctx,
		`DELETE FROM records WHERE key = ?`,
		key,
	)
	return err
}
