// internal/schema/schema_test.go
//
// Unit-tests for required-field validation and the default registry.
//
// Run: go test ./internal/schema -v

package schema

import "testing"

func TestMissingRequired_EmptyRules(t *testing.T) {
	s := Schema{Required: []string{"title", "price", "featured", "tags"}}

	cases := []struct {
		name string
		rec  map[string]any
		want int
	}{
		{"all absent", map[string]any{}, 4},
		{"nil values", map[string]any{"title": nil, "price": nil, "featured": nil, "tags": nil}, 4},
		{"empty string and zero", map[string]any{"title": "", "price": 0, "featured": false, "tags": []any{}}, 4},
		{"float zero", map[string]any{"title": "x", "price": float64(0), "featured": true, "tags": []any{"a"}}, 1},
		{"all present", map[string]any{"title": "x", "price": 99.5, "featured": true, "tags": []any{"a"}}, 0},
	}
	for _, c := range cases {
		if got := s.MissingRequired(c.rec); len(got) != c.want {
			t.Errorf("%s: missing = %v, want %d fields", c.name, got, c.want)
		}
	}
}

func TestMissingRequired_NamesFields(t *testing.T) {
	s := Schema{Required: []string{"title", "price", "siteId"}}
	got := s.MissingRequired(map[string]any{"siteId": "s1"})
	if len(got) != 2 || got[0] != "title" || got[1] != "price" {
		t.Fatalf("missing = %v, want [title price]", got)
	}
}

func TestDefaultRegistry(t *testing.T) {
	reg := Default()

	for _, name := range []string{
		"packages", "blogs", "events", "courses", "bookings",
		"contacts", "users", "themes", "sites",
	} {
		if _, ok := reg.Lookup(name); !ok {
			t.Errorf("collection %q not declared", name)
		}
	}
	if _, ok := reg.Lookup("nonsense"); ok {
		t.Error("unknown collection should not resolve")
	}

	bookings, _ := reg.Lookup("bookings")
	if bookings.Defaults["status"] != "pending" {
		t.Errorf("bookings default status = %v, want pending", bookings.Defaults["status"])
	}
	if bookings.Defaults["travelers"] != 1 {
		t.Errorf("bookings default travelers = %v, want 1", bookings.Defaults["travelers"])
	}

	sites, _ := reg.Lookup("sites")
	if sites.Defaults["theme"] != DefaultTheme {
		t.Errorf("sites default theme = %v, want %q", sites.Defaults["theme"], DefaultTheme)
	}
}
