// internal/site/repository_test.go
//
// Unit-tests for tenant registration and lookup invariants.
//
// Run: go test ./internal/site -v

package site

import (
	"context"
	"errors"
	"testing"

	"github.com/yanizio/voyago/internal/schema"
	"github.com/yanizio/voyago/internal/store"
)

func newRepo() *Repository {
	return NewRepository(store.NewMemory(schema.Default()))
}

func TestCreate_ForcesStatusAndTheme(t *testing.T) {
	ctx := context.Background()
	r := newRepo()

	s, err := r.Create(ctx, map[string]any{
		"name":       "Alpine & Sea",
		"slug":       "alpine-sea",
		"ownerEmail": "owner@alpine.example",
		"status":     "inactive", // must be ignored
		"theme":      "stolen",   // must be ignored
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if s.Status != StatusActive {
		t.Errorf("status = %q, want active", s.Status)
	}
	if s.Theme != schema.DefaultTheme {
		t.Errorf("theme = %q, want %q", s.Theme, schema.DefaultTheme)
	}
	if s.ID == "" || s.CreatedAt.IsZero() {
		t.Error("system fields not stamped")
	}
}

func TestCreate_DerivesSlugFromName(t *testing.T) {
	ctx := context.Background()
	r := newRepo()

	s, err := r.Create(ctx, map[string]any{
		"name":       "Wanderlust Travel Co.",
		"ownerEmail": "o@w.example",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if s.Slug != "wanderlust-travel-co" {
		t.Errorf("slug = %q", s.Slug)
	}
}

func TestCreate_RejectsDuplicateAndReservedSlugs(t *testing.T) {
	ctx := context.Background()
	r := newRepo()

	if _, err := r.Create(ctx, map[string]any{
		"name": "First", "slug": "foo", "ownerEmail": "a@b.c",
	}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := r.Create(ctx, map[string]any{
		"name": "Second", "slug": "foo", "ownerEmail": "d@e.f",
	})
	if !errors.Is(err, ErrSlugTaken) {
		t.Errorf("duplicate slug err = %v, want ErrSlugTaken", err)
	}

	_, err = r.Create(ctx, map[string]any{
		"name": "Sneaky", "slug": "admin", "ownerEmail": "d@e.f",
	})
	if !errors.Is(err, ErrReservedSlug) {
		t.Errorf("reserved slug err = %v, want ErrReservedSlug", err)
	}
}

func TestCreate_ValidationPassesThrough(t *testing.T) {
	ctx := context.Background()
	r := newRepo()

	_, err := r.Create(ctx, map[string]any{"slug": "no-name"})

	var verr *store.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
}

func TestBySlug_ActiveOnlyAndCaseSensitive(t *testing.T) {
	ctx := context.Background()
	r := newRepo()

	created, _ := r.Create(ctx, map[string]any{
		"name": "Foo Travel", "slug": "foo", "ownerEmail": "a@b.c",
	})

	if s, err := r.BySlug(ctx, "foo"); err != nil || s == nil || s.ID != created.ID {
		t.Fatalf("BySlug(foo) = %v, %v", s, err)
	}
	if s, _ := r.BySlug(ctx, "Foo"); s != nil {
		t.Error("slug match must be case-sensitive")
	}

	if _, err := r.Update(ctx, created.ID, map[string]any{"status": "inactive"}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if s, _ := r.BySlug(ctx, "foo"); s != nil {
		t.Error("inactive site must not resolve")
	}
}

func TestUpdate_SlugChangeRechecked(t *testing.T) {
	ctx := context.Background()
	r := newRepo()

	a, _ := r.Create(ctx, map[string]any{"name": "A", "slug": "aaa", "ownerEmail": "a@a.a"})
	_, _ = r.Create(ctx, map[string]any{"name": "B", "slug": "bbb", "ownerEmail": "b@b.b"})

	if _, err := r.Update(ctx, a.ID, map[string]any{"slug": "bbb"}); !errors.Is(err, ErrSlugTaken) {
		t.Errorf("slug collision on update = %v, want ErrSlugTaken", err)
	}
	if _, err := r.Update(ctx, a.ID, map[string]any{"slug": "login"}); !errors.Is(err, ErrReservedSlug) {
		t.Errorf("reserved slug on update = %v, want ErrReservedSlug", err)
	}

	// Keeping its own slug while patching other fields is fine.
	got, err := r.Update(ctx, a.ID, map[string]any{"slug": "aaa", "theme": "voyager"})
	if err != nil {
		t.Fatalf("self-slug update: %v", err)
	}
	if got.Theme != "voyager" {
		t.Errorf("theme = %q, want voyager", got.Theme)
	}
}

func TestUpdate_MissingSiteFails(t *testing.T) {
	ctx := context.Background()
	r := newRepo()

	_, err := r.Update(ctx, "ghost", map[string]any{"name": "X"})

	var nferr *store.NotFoundError
	if !errors.As(err, &nferr) {
		t.Fatalf("err = %v, want *NotFoundError", err)
	}
}
