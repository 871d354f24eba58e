// internal/store/sql.go
//
// MySQL Store backend.
//
// Context
// -------
// Deployments that need records to survive a restart point the store at
// MySQL (or MariaDB on the MySQL wire protocol).  The layout is one
// generic `record` table — collection discriminator, uuid id, JSON
// payload, and store-owned timestamps — with an auto-increment `pos`
// column preserving insertion order for List.
//
// Workflow
// --------
//  1. OpenSQL dials the pool with conservative sizes and pings so boot
//     fails fast on a bad DSN.
//  2. EnsureTable creates the record table when absent.
//  3. CRUD methods share buildRecord with the memory backend, so the
//     validation gate is identical; only persistence differs.
//  4. Driver failures are wrapped in *StorageError so callers can retry
//     the whole category with backoff.
//
// Notes
// -----
// • Update runs inside a transaction with SELECT … FOR UPDATE; a naive
//   read-then-write would lose concurrent patches.
// • System fields live in columns, not in the JSON payload, so the
//   payload blob never contradicts them.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/yanizio/voyago/internal/metrics"
	"github.com/yanizio/voyago/internal/schema"
)

// SQL is the MySQL-backed Store.
type SQL struct {
	db  *sqlx.DB
	reg *schema.Registry
	now func() time.Time
}

var _ Store = (*SQL)(nil)

// OpenSQL connects, tunes the pool, and pings.  DSNs should carry
// parseTime=true so timestamp columns scan into time.Time.
func OpenSQL(dsn string, reg *schema.Registry) (*SQL, error) {
	db, err := sqlx.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(15)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, err
	}
	return NewSQL(db, reg), nil
}

// NewSQL wraps an existing pool.  Used by OpenSQL and by tests that
// substitute a sqlmock connection.
func NewSQL(db *sqlx.DB, reg *schema.Registry) *SQL {
	return &SQL{db: db, reg: reg, now: time.Now}
}

// EnsureTable creates the record table when it does not exist yet.
func (s *SQL) EnsureTable(ctx context.Context) error {
	const ddl = `
        CREATE TABLE IF NOT EXISTS record (
            pos        BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
            collection VARCHAR(64)  NOT NULL,
            id         CHAR(36)     NOT NULL,
            payload    JSON         NOT NULL,
            created_at DATETIME(6)  NOT NULL,
            updated_at DATETIME(6)  NOT NULL,
            UNIQUE KEY record_collection_id (collection, id),
            KEY record_collection_pos (collection, pos)
        )`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return &StorageError{Op: "ensure table", Err: err}
	}
	return nil
}

type recordRow struct {
	ID        string    `db:"id"`
	Payload   []byte    `db:"payload"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r recordRow) toRecord() (Record, error) {
	rec := Record{}
	if len(r.Payload) > 0 {
		if err := json.Unmarshal(r.Payload, &rec); err != nil {
			return nil, err
		}
	}
	rec["id"] = r.ID
	rec["createdAt"] = r.CreatedAt
	rec["updatedAt"] = r.UpdatedAt
	return rec, nil
}

// marshalPayload strips the column-backed system fields and encodes the
// rest as the JSON blob.
func marshalPayload(rec Record) ([]byte, error) {
	body := make(map[string]any, len(rec))
	for k, v := range rec {
		switch k {
		case "id", "createdAt", "updatedAt":
			continue
		}
		body[k] = v
	}
	return json.Marshal(body)
}

// List returns the collection in insertion order.  Unknown collections
// simply match zero rows.
func (s *SQL) List(ctx context.Context, collection string) ([]Record, error) {
	const q = `
        SELECT id, payload, created_at, updated_at
        FROM   record
        WHERE  collection = ?
        ORDER  BY pos`
	var rows []recordRow
	if err := s.db.SelectContext(ctx, &rows, q, collection); err != nil {
		return nil, &StorageError{Op: "list " + collection, Err: err}
	}

	out := make([]Record, 0, len(rows))
	for _, r := range rows {
		rec, err := r.toRecord()
		if err != nil {
			return nil, &StorageError{Op: "decode " + collection, Err: err}
		}
		out = append(out, rec)
	}
	return out, nil
}

// Insert validates via the shared gate, then writes one row.
func (s *SQL) Insert(ctx context.Context, collection string, payload map[string]any) (Record, error) {
	now := s.now().UTC()
	rec, err := buildRecord(s.reg, collection, payload, now)
	if err != nil {
		metrics.ValidationFailuresTotal.WithLabelValues(collection).Inc()
		return nil, err
	}

	blob, err := marshalPayload(rec)
	if err != nil {
		return nil, &StorageError{Op: "encode " + collection, Err: err}
	}

	const q = `
        INSERT INTO record (collection, id, payload, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, q, collection, rec.ID(), blob, now, now); err != nil {
		return nil, &StorageError{Op: "insert " + collection, Err: err}
	}

	metrics.RecordOpsTotal.WithLabelValues("insert", collection).Inc()
	return rec, nil
}

// Update locks the row, merges the patch, and writes it back in one
// transaction.
func (s *SQL) Update(ctx context.Context, collection, id string, patch map[string]any) (Record, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, &StorageError{Op: "update " + collection, Err: err}
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	const sel = `
        SELECT id, payload, created_at, updated_at
        FROM   record
        WHERE  collection = ? AND id = ?
        FOR UPDATE`
	var row recordRow
	if err := tx.GetContext(ctx, &row, sel, collection, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Collection: collection, ID: id}
		}
		return nil, &StorageError{Op: "update " + collection, Err: err}
	}

	rec, err := row.toRecord()
	if err != nil {
		return nil, &StorageError{Op: "decode " + collection, Err: err}
	}
	for k, v := range patch {
		rec[k] = v
	}
	rec["id"] = id
	rec["createdAt"] = row.CreatedAt
	stamp := stampAfter(s.now().UTC(), row.UpdatedAt)
	rec["updatedAt"] = stamp

	blob, err := marshalPayload(rec)
	if err != nil {
		return nil, &StorageError{Op: "encode " + collection, Err: err}
	}

	const upd = `
        UPDATE record
        SET    payload = ?, updated_at = ?
        WHERE  collection = ? AND id = ?`
	if _, err := tx.ExecContext(ctx, upd, blob, stamp, collection, id); err != nil {
		return nil, &StorageError{Op: "update " + collection, Err: err}
	}
	if err := tx.Commit(); err != nil {
		return nil, &StorageError{Op: "update " + collection, Err: err}
	}

	metrics.RecordOpsTotal.WithLabelValues("update", collection).Inc()
	return rec, nil
}

// Delete removes the row when present; zero rows affected is still
// success, keeping the operation idempotent.
func (s *SQL) Delete(ctx context.Context, collection, id string) error {
	const q = `DELETE FROM record WHERE collection = ? AND id = ?`
	if _, err := s.db.ExecContext(ctx, q, collection, id); err != nil {
		return &StorageError{Op: "delete " + collection, Err: err}
	}
	metrics.RecordOpsTotal.WithLabelValues("delete", collection).Inc()
	return nil
}

// Schema exposes the declared schema for form generation.
func (s *SQL) Schema(collection string) (schema.Schema, bool) {
	return s.reg.Lookup(collection)
}
