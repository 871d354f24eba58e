// internal/store/sql_test.go
//
// Unit-tests for the MySQL Store backend using sqlmock.
//
// Context
// -------
// These tests pin the contract the memory backend shares: the validation
// gate fires before any SQL, a missing id is a NotFoundError (with the
// transaction rolled back), zero-row deletes succeed, and raw driver
// failures surface as *StorageError.
//
// Run: go test ./internal/store -v

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/yanizio/voyago/internal/schema"
)

func newTestSQL(t *testing.T) (*SQL, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSQL(sqlx.NewDb(db, "sqlmock"), schema.Default()), mock
}

func TestSQLList_DecodesRows(t *testing.T) {
	s, mock := newTestSQL(t)
	ts := time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, payload, created_at, updated_at`).
		WithArgs("packages").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "payload", "created_at", "updated_at"}).
			AddRow("p1", []byte(`{"title":"Fjord Week","price":1290}`), ts, ts))

	rows, err := s.List(context.Background(), "packages")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 || rows[0].ID() != "p1" || rows[0]["title"] != "Fjord Week" {
		t.Fatalf("unexpected rows: %#v", rows)
	}
	if !rows[0].Time("createdAt").Equal(ts) {
		t.Errorf("createdAt = %v, want %v", rows[0].Time("createdAt"), ts)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestSQLList_DriverErrorIsStorageError(t *testing.T) {
	s, mock := newTestSQL(t)

	mock.ExpectQuery(`SELECT id, payload`).
		WithArgs("packages").
		WillReturnError(errors.New("connection refused"))

	_, err := s.List(context.Background(), "packages")

	var serr *StorageError
	if !errors.As(err, &serr) {
		t.Fatalf("err = %v, want *StorageError", err)
	}
}

func TestSQLInsert_ValidationBeforeSQL(t *testing.T) {
	s, mock := newTestSQL(t)

	// No SQL expectations registered: a validation failure must never
	// reach the database.
	_, err := s.Insert(context.Background(), "packages", map[string]any{"siteId": "x"})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("SQL executed on failed validation: %v", err)
	}
}

func TestSQLInsert_WritesRow(t *testing.T) {
	s, mock := newTestSQL(t)

	mock.ExpectExec(`INSERT INTO record`).
		WithArgs("bookings", sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	rec, err := s.Insert(context.Background(), "bookings", map[string]any{
		"customerName": "A", "customerEmail": "a@b.com", "siteId": "s1",
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if rec["status"] != "pending" || rec["travelers"] != 1 {
		t.Errorf("defaults not merged: %v", rec)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestSQLUpdate_MissingIDRollsBack(t *testing.T) {
	s, mock := newTestSQL(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, payload`).
		WithArgs("packages", "nope").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := s.Update(context.Background(), "packages", "nope", map[string]any{"price": 1.0})

	var nferr *NotFoundError
	if !errors.As(err, &nferr) {
		t.Fatalf("err = %v, want *NotFoundError", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestSQLUpdate_MergesAndStamps(t *testing.T) {
	s, mock := newTestSQL(t)
	ts := time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, payload`).
		WithArgs("packages", "p1").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "payload", "created_at", "updated_at"}).
			AddRow("p1", []byte(`{"title":"Fjord Week","price":1290}`), ts, ts))
	mock.ExpectExec(`UPDATE record`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "packages", "p1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rec, err := s.Update(context.Background(), "packages", "p1", map[string]any{"price": 990.0})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if rec["price"] != 990.0 || rec["title"] != "Fjord Week" {
		t.Errorf("merge wrong: %v", rec)
	}
	if !rec.Time("updatedAt").After(ts) {
		t.Error("updatedAt not bumped past the stored stamp")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestSQLDelete_ZeroRowsIsSuccess(t *testing.T) {
	s, mock := newTestSQL(t)

	mock.ExpectExec(`DELETE FROM record`).
		WithArgs("packages", "gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.Delete(context.Background(), "packages", "gone"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}
