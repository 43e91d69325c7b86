package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func setupPostgresMock(t *testing.T) (*Postgres, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	s := NewPostgres(db)
	cleanup := func() { db.Close() }
	return s, mock, cleanup
}

func TestPostgresGet_Found(t *testing.T) {
	s, mock, cleanup := setupPostgresMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM records WHERE key = $1`)).
		WithArgs(KeyPassword).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("newpass1"))

	v, err := s.Get(context.Background(), KeyPassword)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "newpass1" {
		t.Errorf("Get = %q; want %q", v, "newpass1")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresGet_Absent(t *testing.T) {
	s, mock, cleanup := setupPostgresMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM records WHERE key = $1`)).
		WithArgs(KeySession).
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, err := s.Get(context.Background(), KeySession)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get error = %v; want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresGet_Error(t *testing.T) {
	s, mock, cleanup := setupPostgresMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM records WHERE key = $1`)).
		WithArgs(KeyProfile).
		WillReturnError(errors.New("query failed"))

	_, err := s.Get(context.Background(), KeyProfile)
	if err == nil {
		t.Errorf("expected error, got nil")
	}
	if errors.Is(err, ErrNotFound) {
		t.Errorf("backend failure must not look like an absent key")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresSet(t *testing.T) {
	s, mock, cleanup := setupPostgresMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO records (key, value) VALUES ($1, $2)`)).
		WithArgs(KeyPassword, "newpass1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.Set(context.Background(), KeyPassword, "newpass1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresRemove(t *testing.T) {
	s, mock, cleanup := setupPostgresMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM records WHERE key = $1`)).
		WithArgs(KeyPassword).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.Remove(context.Background(), KeyPassword); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
