// context.go carries the settled Resolution through the request context so
// handlers downstream of the middleware can branch on main-platform vs.
// tenant vs. not-found without re-resolving.
package tenant

import "context"

type ctxKey struct{}

// WithResolution stores res in ctx.
func WithResolution(ctx context.Context, res Resolution) context.Context {
	return context.WithValue(ctx, ctxKey{}, res)
}

// ResolutionFrom extracts the resolution placed by the middleware.  The
// zero Resolution (main platform) is returned when none is present.
func ResolutionFrom(ctx context.Context) Resolution {
	res, _ := ctx.Value(ctxKey{}).(Resolution)
	return res
}
