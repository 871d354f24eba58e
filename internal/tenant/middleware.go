// middleware.go wires the Resolver into the HTTP request path.  Each
// request begins a generation on the ambient holder, resolves, applies,
// and stashes the outcome in the request context.  Dependent queries (a
// storefront's package listing, say) must read the resolution from the
// context rather than resolving again.
package tenant

import (
	"net/http"

	"go.uber.org/zap"
)

// Middleware resolves the tenant for every request passing through it.
func Middleware(r *Resolver, cur *Current, log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			path := req.URL.Path
			gen := cur.Begin(path)

			s, err := r.Resolve(req.Context(), path)
			if !cur.Apply(gen, s, err) {
				log.Debugw("stale resolution discarded", "path", path)
			}

			ctx := WithResolution(req.Context(), Resolution{Site: s, Err: err})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}
