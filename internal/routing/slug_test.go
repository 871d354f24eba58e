// internal/routing/slug_test.go
//
// Unit-tests for segment, slug, and reserved-set helpers.
//
// Run: go test ./internal/routing -v

package routing

import "testing"

func TestFirstSegment(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/", ""},
		{"", ""},
		{"///", ""},
		{"/wanderlust", "wanderlust"},
		{"/wanderlust/packages/3", "wanderlust"},
		{"//wanderlust/", "wanderlust"},
		{"/admin/sites", "admin"},
	}
	for _, c := range cases {
		if got := FirstSegment(c.path); got != c.want {
			t.Errorf("FirstSegment(%q) = %q, want %q", c.path, got, c.want)
		}
	}
}

func TestMakeSlug(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Wanderlust Travel Co.", "wanderlust-travel-co"},
		{"  --Alpine & Sea!!  ", "alpine-sea"},
		{"北京旅游", "site"},
		{"", "site"},
		{"already-kebab", "already-kebab"},
	}
	for _, c := range cases {
		if got := MakeSlug(c.in); got != c.want {
			t.Errorf("MakeSlug(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestIsReserved_ExactMatchOnly(t *testing.T) {
	for _, s := range ReservedSegments() {
		if !IsReserved(s) {
			t.Errorf("%q should be reserved", s)
		}
	}
	for _, s := range []string{"Admin", "blogs", "admin2", "book", ""} {
		if IsReserved(s) {
			t.Errorf("%q should not be reserved", s)
		}
	}
}
