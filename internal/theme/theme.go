// Package theme resolves a site's visual identity from the `themes`
// collection.  A Theme here is data, not templates: the storefront
// renderer (an external collaborator) consumes the colors and font family
// and applies them client-side.  Lookups fall back to the default theme
// record, and finally to a built-in so a half-seeded store still renders.
package theme

import (
	"context"

	"github.com/yanizio/voyago/internal/schema"
	"github.com/yanizio/voyago/internal/store"
)

// Default is the theme assigned to new sites.
const Default = schema.DefaultTheme

// Theme is one row of the themes collection, typed.
type Theme struct {
	Name           string `json:"name"`
	Label          string `json:"label,omitempty"`
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	FontFamily     string `json:"fontFamily"`
	Preview        string `json:"preview,omitempty"`
}

// builtin backstops lookups when even the default record is missing.
var builtin = Theme{
	Name:           Default,
	PrimaryColor:   "#0f766e",
	SecondaryColor: "#f59e0b",
	FontFamily:     "Inter",
}

// Manager reads themes from the record store.
type Manager struct {
	store store.Store
}

// NewManager binds the manager to a store.
func NewManager(st store.Store) *Manager {
	return &Manager{store: st}
}

// ByName returns the named theme, the default theme when the name is
// unknown or empty, and the built-in as a last resort.  Storage errors
// propagate so callers can degrade explicitly.
func (m *Manager) ByName(ctx context.Context, name string) (*Theme, error) {
	rows, err := m.store.List(ctx, "themes")
	if err != nil {
		return nil, err
	}

	var def *Theme
	for _, rec := range rows {
		t := fromRecord(rec)
		if t.Name == name {
			return t, nil
		}
		if t.Name == Default {
			def = t
		}
	}
	if def != nil {
		return def, nil
	}
	fallback := builtin
	return &fallback, nil
}

func fromRecord(rec store.Record) *Theme {
	return &Theme{
		Name:           rec.Str("name"),
		Label:          rec.Str("label"),
		PrimaryColor:   rec.Str("primaryColor"),
		SecondaryColor: rec.Str("secondaryColor"),
		FontFamily:     rec.Str("fontFamily"),
		Preview:        rec.Str("preview"),
	}
}
