// internal/store/store.go
//
// Schema-validated generic record store.
//
// Context
// -------
// Every feature area — packages, bookings, blogs, the sites table the
// tenant resolver reads — goes through the same collection-oriented CRUD
// facade.  A Store is parameterized by a schema.Registry; inserts merge
// collection defaults under the caller's payload, stamp system fields, and
// enforce required-field presence before anything is written.
//
// Two backends satisfy the interface: Memory (reference model, process
// owned) and SQL (MySQL via sqlx, for deployments that need the rows to
// survive a restart).  Both share buildRecord so validation semantics can
// never drift between them.
//
// Notes
// -----
// • `id`, `createdAt`, and `updatedAt` are store-assigned; payload values
//   for those keys are discarded.
// • Update is a shallow merge and does not re-validate required fields, so
//   partial patches stay cheap.
// • Oxford commas, two spaces after periods.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yanizio/voyago/internal/schema"
)

// Record is one stored item.  Values are loosely typed; typed views (for
// example site.Site) are built on top by the owning package.
type Record map[string]any

// Store is the collection CRUD contract shared by both backends.
type Store interface {
	// List returns a materialized snapshot of the collection in insertion
	// order.  Unknown collections yield an empty slice, never an error.
	List(ctx context.Context, collection string) ([]Record, error)

	// Insert merges defaults, payload, and system fields, validates
	// required fields, and appends the record.  Fails with
	// *ValidationError before any mutation.
	Insert(ctx context.Context, collection string, payload map[string]any) (Record, error)

	// Update shallow-merges patch over the stored record and stamps a new
	// updatedAt.  A missing id fails with *NotFoundError.
	Update(ctx context.Context, collection, id string, patch map[string]any) (Record, error)

	// Delete removes the record when present; absent ids are a no-op.
	Delete(ctx context.Context, collection, id string) error

	// Schema returns the declared schema for form generation.
	Schema(collection string) (schema.Schema, bool)
}

// ID returns the record's store-assigned id, or "".
func (r Record) ID() string { return r.Str("id") }

// Str returns the string value under key, or "" when absent or non-string.
func (r Record) Str(key string) string {
	v, _ := r[key].(string)
	return v
}

// Time returns the time value under key.  RFC 3339 strings are accepted so
// records round-tripped through JSON behave the same as in-memory ones.
func (r Record) Time(key string) time.Time {
	switch v := r[key].(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Clone returns a shallow copy so callers can hold a snapshot without
// aliasing store-owned maps.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// buildRecord assembles the merged record for an insert: defaults first,
// caller payload over them, system fields last so the payload cannot spoof
// id or timestamps.  Returns *ValidationError when required fields are
// missing from the merged result.
func buildRecord(reg *schema.Registry, collection string, payload map[string]any, now time.Time) (Record, error) {
	rec := Record{}

	sch, declared := reg.Lookup(collection)
	if declared {
		for k, v := range sch.Defaults {
			rec[k] = v
		}
	}
	for k, v := range payload {
		rec[k] = v
	}

	rec["id"] = uuid.NewString()
	rec["createdAt"] = now
	rec["updatedAt"] = now

	if declared {
		if missing := sch.MissingRequired(rec); len(missing) > 0 {
			return nil, &ValidationError{Collection: collection, Missing: missing}
		}
	}
	return rec, nil
}

// stampAfter returns now, pushed forward a nanosecond when the clock has
// not advanced past prev, so updatedAt is strictly later than the value it
// replaces even on coarse clocks.
func stampAfter(now, prev time.Time) time.Time {
	if !now.After(prev) {
		return prev.Add(time.Nanosecond)
	}
	return now
}
