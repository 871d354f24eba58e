// internal/store/seed.go
//
// First-boot seed data: the fixed theme catalog plus one sample tenant so
// a fresh instance resolves something before the first registration.
// Seeding is skipped when the sites collection already has rows, so it is
// safe to call on every boot against either backend.
package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/yanizio/voyago/internal/schema"
)

// Seed populates themes and the sample tenant on an empty store.
func Seed(ctx context.Context, s Store, log *zap.SugaredLogger) error {
	sites, err := s.List(ctx, "sites")
	if err != nil {
		return err
	}
	if len(sites) > 0 {
		log.Debugw("seed skipped", "sites", len(sites))
		return nil
	}

	themes := []map[string]any{
		{"name": schema.DefaultTheme, "label": "Horizon", "primaryColor": "#0f766e", "secondaryColor": "#f59e0b", "fontFamily": "Inter"},
		{"name": "voyager", "label": "Voyager", "primaryColor": "#1d4ed8", "secondaryColor": "#f97316", "fontFamily": "Sora"},
		{"name": "atlas", "label": "Atlas", "primaryColor": "#334155", "secondaryColor": "#22d3ee", "fontFamily": "Source Sans 3"},
		{"name": "summit", "label": "Summit", "primaryColor": "#166534", "secondaryColor": "#eab308", "fontFamily": "Manrope"},
	}
	for _, t := range themes {
		if _, err := s.Insert(ctx, "themes", t); err != nil {
			return err
		}
	}

	sample := map[string]any{
		"name":         "Wanderlust Travel Co.",
		"slug":         "wanderlust",
		"ownerEmail":   "owner@wanderlust.example",
		"ownerName":    "Maya Okafor",
		"description":  "Sample storefront created on first boot.",
		"contactEmail": "hello@wanderlust.example",
	}
	if _, err := s.Insert(ctx, "sites", sample); err != nil {
		return err
	}

	log.Infow("seed data loaded", "themes", len(themes), "sample_site", sample["slug"])
	return nil
}
