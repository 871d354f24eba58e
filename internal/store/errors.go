// internal/store/errors.go
//
// Error taxonomy for the record store.
//
// Context
// -------
// Callers branch on three categories:
//
//   • ValidationError — insert payload missing required fields.  Checked,
//     carries the field names, never retried without corrected input.
//   • NotFoundError   — update referenced an id that is not stored.
//   • StorageError    — the backing store itself failed (network, driver).
//     Transient; callers may retry with backoff.  Only the SQL backend
//     produces these.
//
// Use errors.As to classify; all three implement error and StorageError
// unwraps to the driver cause.
package store

import (
	"fmt"
	"strings"
)

// ValidationError reports required fields absent from a merged insert
// payload.  The record was not stored.
type ValidationError struct {
	Collection string
	Missing    []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("store: %s insert missing required field(s): %s",
		e.Collection, strings.Join(e.Missing, ", "))
}

// NotFoundError reports an update against an id the collection does not
// hold.  Nothing is fabricated or persisted.
type NotFoundError struct {
	Collection string
	ID         string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("store: %s record %s not found", e.Collection, e.ID)
}

// StorageError wraps a backend failure so callers can treat the whole
// category as retryable without sniffing driver error strings.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("store: %s: storage unavailable: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
