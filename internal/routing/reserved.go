// internal/routing/reserved.go
//
// Reserved first-segment set.
//
// These segments name main-platform routes and can never be interpreted as
// tenant slugs.  Matching is exact and case-sensitive; "/admin/foo" is a
// platform route because its first segment is "admin", while "/foo/admin"
// belongs to tenant "foo".  Keep the set in sync with site.Repository,
// which refuses to register a tenant under any of these names.
package routing

import "sort"

var reserved = map[string]struct{}{
	"admin":          {},
	"login":          {},
	"register":       {},
	"sites":          {},
	"register-site":  {},
	"packages":       {},
	"blog":           {},
	"courses":        {},
	"events":         {},
	"knowledge-base": {},
	"about":          {},
	"contact":        {},
	"booking":        {},
	"terms":          {},
	"privacy":        {},
}

// IsReserved reports whether segment is a main-platform route name.
func IsReserved(segment string) bool {
	_, ok := reserved[segment]
	return ok
}

// ReservedSegments returns the set sorted, for diagnostics and the admin
// API's registration form.
func ReservedSegments() []string {
	out := make([]string, 0, len(reserved))
	for s := range reserved {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
