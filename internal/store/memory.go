// internal/store/memory.go
//
// In-memory Store backend.
//
// Context
// -------
// The reference deployment owns all records in one process, so the backend
// is a map of collection → ordered slice guarded by a single mutex.  The
// mutex exists for the API surface, not raw map safety: Update is a
// read-modify-write, and two concurrent patches to the same record must
// not lose one another's fields.
//
// The clock is injectable so tests can assert the strictly-later updatedAt
// property without sleeping.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/yanizio/voyago/internal/metrics"
	"github.com/yanizio/voyago/internal/schema"
)

// Memory is the in-process Store.  Construct with NewMemory; the zero
// value is unusable.
type Memory struct {
	reg *schema.Registry

	mu   sync.Mutex
	data map[string][]Record

	now func() time.Time
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty store bound to the given schema registry.
func NewMemory(reg *schema.Registry) *Memory {
	return &Memory{
		reg:  reg,
		data: make(map[string][]Record),
		now:  time.Now,
	}
}

// List returns a snapshot of the collection in insertion order.  Records
// are cloned so callers cannot mutate store state through the result.
func (m *Memory) List(ctx context.Context, collection string) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows := m.data[collection]
	out := make([]Record, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	return out, nil
}

// Insert validates and appends one record.  See Store for merge order.
func (m *Memory) Insert(ctx context.Context, collection string, payload map[string]any) (Record, error) {
	rec, err := buildRecord(m.reg, collection, payload, m.now().UTC())
	if err != nil {
		metrics.ValidationFailuresTotal.WithLabelValues(collection).Inc()
		return nil, err
	}

	m.mu.Lock()
	m.data[collection] = append(m.data[collection], rec)
	m.mu.Unlock()

	metrics.RecordOpsTotal.WithLabelValues("insert", collection).Inc()
	return rec.Clone(), nil
}

// Update shallow-merges patch over the stored record under the store lock,
// so concurrent patches cannot drop each other's fields.
func (m *Memory) Update(ctx context.Context, collection, id string, patch map[string]any) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows := m.data[collection]
	for i, r := range rows {
		if r.ID() != id {
			continue
		}
		merged := r.Clone()
		for k, v := range patch {
			merged[k] = v
		}
		// System fields stay store-owned on update as well.
		merged["id"] = id
		merged["createdAt"] = r["createdAt"]
		merged["updatedAt"] = stampAfter(m.now().UTC(), r.Time("updatedAt"))

		rows[i] = merged
		metrics.RecordOpsTotal.WithLabelValues("update", collection).Inc()
		return merged.Clone(), nil
	}
	return nil, &NotFoundError{Collection: collection, ID: id}
}

// Delete removes the record when present.  Absent ids return nil, making
// duplicate deletes harmless.
func (m *Memory) Delete(ctx context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows := m.data[collection]
	for i, r := range rows {
		if r.ID() == id {
			m.data[collection] = append(rows[:i:i], rows[i+1:]...)
			metrics.RecordOpsTotal.WithLabelValues("delete", collection).Inc()
			return nil
		}
	}
	return nil
}

// Schema exposes the declared schema for form generation.
func (m *Memory) Schema(collection string) (schema.Schema, bool) {
	return m.reg.Lookup(collection)
}
