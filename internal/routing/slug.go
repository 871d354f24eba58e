// internal/routing/slug.go
//
// Slug and path-segment helpers.
//
// Context
// -------
// Tenant resolution keys off the *first* non-empty path segment, and site
// registration derives a URL slug from the storefront name when the owner
// does not pick one.  Both pieces of string work live here so the tenant
// and site packages stay free of parsing details.
//
// Rules (MakeSlug)
// ----------------
// 1. Lower-case the input.
// 2. Any run of characters outside [a-z0-9] collapses to one "-".
// 3. Trim leading and trailing "-".
// 4. Empty results fall back to "site".
// 5. Slugs are capped at 64 bytes; the cap never ends on a dash.
//
// Notes
// -----
// • No Unicode transliteration; the platform is English-only for now.
// • Oxford commas, two spaces after periods.

package routing

import "strings"

// FirstSegment returns the first non-empty "/"-separated segment of path,
// or "" when the path names the platform root.  "//foo" and "/foo" agree.
func FirstSegment(path string) string {
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			return seg
		}
	}
	return ""
}

// MakeSlug converts a free-text name into a lower-kebab ASCII slug.
func MakeSlug(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash {
				b.WriteByte('-')
				dash = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "site"
	}
	if len(slug) > 64 {
		slug = strings.TrimRight(slug[:64], "-")
	}
	return slug
}
