package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS records (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// OpenPostgres connects to PostgreSQL and ensures the records table
// exists.
func OpenPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.Exec(postgresSchema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}

// Postgres implements Store over a PostgreSQL key-value table.
type Postgres struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgres creates a Postgres store with the given database connection.
// db must be a valid *sql.DB connected to a PostgreSQL instance.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{DB: db}
}

func (s *Postgres) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.DB.QueryRowContext(
		ctx,
		`SELECT value FROM records WHERE key = $1`,
		key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return value, err
}

func (s *Postgres) Set(ctx context.Context, key, value string) error {
	_, err := s.DB.ExecContext(
		ctx,
		`INSERT INTO records (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, value,
	)
	return err
}

func (s *Postgres) Remove(ctx context.Context, key string) error {
	_, err := s.DB.ExecContext(
		ctx,
		`DELETE FROM records WHERE key = $1`,
		key,
	)
	return err
}
