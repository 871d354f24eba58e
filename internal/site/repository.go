// internal/site/repository.go
//
// Tenant CRUD over the `sites` collection.
//
// Context
// -------
// The repository is the only writer of the sites collection, which lets it
// enforce two constraints the generic store deliberately does not know
// about: slug uniqueness, and the reserved-route exclusion.  Registration
// also force-sets status and theme no matter what the caller sent, so a
// new storefront is always live on the default look.
//
// Notes
// -----
// • Slug matching is exact and case-sensitive everywhere.
// • Sites are never hard-deleted; retiring one is a status update.
package site

import (
	"context"
	"errors"

	"github.com/yanizio/voyago/internal/routing"
	"github.com/yanizio/voyago/internal/schema"
	"github.com/yanizio/voyago/internal/store"
)

// ErrSlugTaken is returned when a registration or slug change collides
// with an existing site, active or not.
var ErrSlugTaken = errors.New("site: slug already in use")

// ErrReservedSlug is returned when the requested slug is a main-platform
// route segment; such a site could never be resolved.
var ErrReservedSlug = errors.New("site: slug is a reserved route segment")

// Repository wraps a record store with site-specific invariants.
type Repository struct {
	store store.Store
}

// NewRepository binds the repository to a store.
func NewRepository(st store.Store) *Repository {
	return &Repository{store: st}
}

// BySlug returns the active site with exactly this slug, or (nil, nil)
// when no active site matches.  Errors are storage failures only.
func (r *Repository) BySlug(ctx context.Context, slug string) (*Site, error) {
	rows, err := r.store.List(ctx, "sites")
	if err != nil {
		return nil, err
	}
	for _, rec := range rows {
		if rec.Str("slug") == slug && rec.Str("status") == StatusActive {
			return FromRecord(rec), nil
		}
	}
	return nil, nil
}

// AllActive returns every active site, for the platform directory and
// admin dashboards.
func (r *Repository) AllActive(ctx context.Context) ([]*Site, error) {
	rows, err := r.store.List(ctx, "sites")
	if err != nil {
		return nil, err
	}
	out := make([]*Site, 0, len(rows))
	for _, rec := range rows {
		if s := FromRecord(rec); s.Active() {
			out = append(out, s)
		}
	}
	return out, nil
}

// Create registers a new site.  A missing slug is derived from the name;
// status and theme are forced regardless of the caller's payload.
func (r *Repository) Create(ctx context.Context, fields map[string]any) (*Site, error) {
	payload := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		payload[k] = v
	}

	slug, _ := payload["slug"].(string)
	if slug == "" {
		if name, _ := payload["name"].(string); name != "" {
			slug = routing.MakeSlug(name)
		}
		payload["slug"] = slug
	}

	if routing.IsReserved(slug) {
		return nil, ErrReservedSlug
	}
	if taken, err := r.slugInUse(ctx, slug, ""); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrSlugTaken
	}

	// Registration decides these, not the registrant.
	payload["status"] = StatusActive
	payload["theme"] = schema.DefaultTheme

	rec, err := r.store.Insert(ctx, "sites", payload)
	if err != nil {
		return nil, err
	}
	return FromRecord(rec), nil
}

// Update patches one site.  When the patch changes the slug, uniqueness
// and the reserved set are re-checked against every other site.
func (r *Repository) Update(ctx context.Context, id string, patch map[string]any) (*Site, error) {
	if slug, ok := patch["slug"].(string); ok {
		if routing.IsReserved(slug) {
			return nil, ErrReservedSlug
		}
		if taken, err := r.slugInUse(ctx, slug, id); err != nil {
			return nil, err
		} else if taken {
			return nil, ErrSlugTaken
		}
	}

	rec, err := r.store.Update(ctx, "sites", id, patch)
	if err != nil {
		return nil, err
	}
	return FromRecord(rec), nil
}

// slugInUse scans for any site (regardless of status) holding slug,
// excluding the given id so a site may keep its own slug on update.
func (r *Repository) slugInUse(ctx context.Context, slug, excludeID string) (bool, error) {
	rows, err := r.store.List(ctx, "sites")
	if err != nil {
		return false, err
	}
	for _, rec := range rows {
		if rec.Str("slug") == slug && rec.ID() != excludeID {
			return true, nil
		}
	}
	return false, nil
}
