// internal/tenant/resolver.go
//
// Path → tenant resolution.
//
// Context
// -------
// Every navigation asks the same question: does the first path segment
// name a storefront?  Resolution is stateless and re-evaluated from
// scratch on every call — there is deliberately no tenant cache, because
// an admin flipping a site inactive must take effect on the next request.
// The only sharing is a singleflight group that collapses *concurrent*
// lookups for the same slug into one store read; results are never kept.
//
// The three outcomes are distinct and every caller must keep them apart:
//
//   (site, nil)         – an active tenant matched the slug.
//   (nil, nil)          – no tenant was requested (root, or a reserved
//                         main-platform segment); render the main site.
//   (nil, ErrNotFound)  – a tenant was requested but no active site holds
//                         that slug; render the 404-style page.
//
// Storage failures pass through unwrapped so callers can classify them
// with errors.As against store.StorageError.
package tenant

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/yanizio/voyago/internal/metrics"
	"github.com/yanizio/voyago/internal/routing"
	"github.com/yanizio/voyago/internal/site"
)

// ErrNotFound marks a requested-but-absent (or inactive) tenant.  Distinct
// from the (nil, nil) no-tenant result.
var ErrNotFound = errors.New("tenant not found or inactive")

// Resolver maps URL paths to active sites.
type Resolver struct {
	sites *site.Repository
	sfg   singleflight.Group
	log   *zap.SugaredLogger
}

// New builds a Resolver over the site repository.
func New(sites *site.Repository, log *zap.SugaredLogger) *Resolver {
	return &Resolver{sites: sites, log: log}
}

// Resolve inspects path and returns the active tenant it names, if any.
// Only the first non-empty segment is ever considered; "/foo/admin" is
// tenant "foo", never the reserved word "admin".
func (r *Resolver) Resolve(ctx context.Context, path string) (*site.Site, error) {
	seg := routing.FirstSegment(path)
	if seg == "" {
		return nil, nil
	}
	if routing.IsReserved(seg) {
		return nil, nil
	}

	v, err, _ := r.sfg.Do(seg, func() (any, error) {
		s, err := r.sites.BySlug(ctx, seg)
		if err != nil {
			metrics.TenantResolveErrorsTotal.Inc()
			r.log.Errorw("tenant lookup failed", "slug", seg, "err", err)
			return nil, err
		}
		if s == nil {
			metrics.TenantResolveMissTotal.Inc()
			return nil, ErrNotFound
		}
		metrics.TenantResolveTotal.Inc()
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*site.Site), nil
}

// CreateTenant registers a storefront.  Passthrough to the repository,
// kept here so resolver consumers have one surface for tenant life-cycle.
func (r *Resolver) CreateTenant(ctx context.Context, fields map[string]any) (*site.Site, error) {
	return r.sites.Create(ctx, fields)
}

// UpdateTenant patches a storefront by id.
func (r *Resolver) UpdateTenant(ctx context.Context, id string, patch map[string]any) (*site.Site, error) {
	return r.sites.Update(ctx, id, patch)
}
