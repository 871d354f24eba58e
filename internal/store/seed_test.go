package store

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestSeed_PopulatesOnceOnly(t *testing.T) {
	ctx := context.Background()
	m := newTestMemory()
	log := zap.NewNop().Sugar()

	if err := Seed(ctx, m, log); err != nil {
		t.Fatalf("seed: %v", err)
	}
	themes, _ := m.List(ctx, "themes")
	sites, _ := m.List(ctx, "sites")
	if len(themes) == 0 || len(sites) != 1 {
		t.Fatalf("themes=%d sites=%d after seed", len(themes), len(sites))
	}

	// Second boot must not duplicate anything.
	if err := Seed(ctx, m, log); err != nil {
		t.Fatalf("re-seed: %v", err)
	}
	themes2, _ := m.List(ctx, "themes")
	sites2, _ := m.List(ctx, "sites")
	if len(themes2) != len(themes) || len(sites2) != 1 {
		t.Fatal("seed ran twice")
	}
}
