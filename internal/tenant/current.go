// internal/tenant/current.go
//
// Ambient current-tenant holder with out-of-order protection.
//
// Context
// -------
// Navigation-driven UIs kick off a resolution every time the observed path
// changes, and a slow lookup for the *previous* path can complete after a
// newer one has already landed.  Current tracks a generation per Begin
// call; Apply only installs a result whose generation is still the latest,
// so a stale in-flight resolution is discarded instead of clobbering the
// fresh one.
package tenant

import (
	"sync"

	"github.com/yanizio/voyago/internal/site"
)

// Resolution is one settled outcome: Site and Err follow the Resolver's
// three-way contract (both nil means "main platform").
type Resolution struct {
	Site *site.Site
	Err  error
}

// Current holds the most recently applied resolution.  Safe for
// concurrent use; the zero value is ready.
type Current struct {
	mu   sync.Mutex
	gen  uint64
	path string
	res  Resolution
}

// Begin registers a new observed path and returns its generation token.
// Any resolution begun earlier becomes stale immediately.
func (c *Current) Begin(path string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.path = path
	return c.gen
}

// Apply installs a resolution if gen is still current.  Returns false when
// the result arrived too late and was dropped.
func (c *Current) Apply(gen uint64, s *site.Site, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	c.res = Resolution{Site: s, Err: err}
	return true
}

// Snapshot returns the last applied path and resolution.
func (c *Current) Snapshot() (string, Resolution) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.path, c.res
}
