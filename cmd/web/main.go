// cmd/web/main.go
//
// Voyago – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load env vars (jail-wide file → .env fallback).
//
//  2. Start the rotating JSON logger (tees to console in a TTY).
//
//  3. Load layered configuration and resolve Vault secret references.
//
//  4. Open the record store: in-memory for the reference deployment,
//     MySQL when storage.driver says so.  Seed themes plus the sample
//     tenant on an empty store.
//
//  5. Wire the site repository, tenant resolver, ambient holder, and
//     theme manager.
//
//  6. Assemble the router (admin API, /metrics, public front) and serve
//     it behind the HTTPS-enforcement wrapper with hardened timeouts.
package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/yanizio/voyago/internal/api"
	"github.com/yanizio/voyago/internal/config"
	"github.com/yanizio/voyago/internal/logger"
	"github.com/yanizio/voyago/internal/middleware"
	"github.com/yanizio/voyago/internal/requestinfo"
	"github.com/yanizio/voyago/internal/schema"
	"github.com/yanizio/voyago/internal/server"
	"github.com/yanizio/voyago/internal/site"
	"github.com/yanizio/voyago/internal/store"
	"github.com/yanizio/voyago/internal/tenant"
	"github.com/yanizio/voyago/internal/theme"
)

const serverEnvPath = "/usr/local/etc/voyago/global.env"

// loadEnv prefers the jail-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	ctx := context.Background()

	rootDir, _ := os.Getwd()
	logOut, err := logger.New(rootDir, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		logOut.Fatalw("load config", "err", err)
	}

	//
	// ── 1.  Record store ────────────────────────────────────────────────
	//
	registry := schema.Default()
	var st store.Store
	switch cfg.Storage.Driver {
	case "mysql":
		sqlStore, err := store.OpenSQL(cfg.StorageDSN(), registry)
		if err != nil {
			logOut.Fatalw("connect record store", "err", err)
		}
		if err := sqlStore.EnsureTable(ctx); err != nil {
			logOut.Fatalw("ensure record table", "err", err)
		}
		st = sqlStore
		logOut.Infow("record store online", "driver", "mysql")
	default:
		st = store.NewMemory(registry)
		logOut.Infow("record store online", "driver", "memory")
	}

	if cfg.Storage.Seed {
		if err := store.Seed(ctx, st, logOut); err != nil {
			logOut.Fatalw("seed store", "err", err)
		}
	}

	//
	// ── 2.  Tenant resolution stack ─────────────────────────────────────
	//
	sites := site.NewRepository(st)
	resolver := tenant.New(sites, logOut)
	current := &tenant.Current{}
	themes := theme.NewManager(st)

	// Early sanity check, mirrors what operators expect in the boot log.
	if active, err := sites.AllActive(ctx); err == nil {
		logOut.Infow("active sites", "count", len(active))
	}

	//
	// ── 3.  Access-log geo enrichment (optional) ────────────────────────
	//
	if err := requestinfo.InitGeo(cfg.Geo.DBPath); err != nil {
		logOut.Warnw("geo database unavailable, continuing without",
			"path", cfg.Geo.DBPath, "err", err)
	}

	//
	// ── 4.  Router and server ───────────────────────────────────────────
	//
	app := api.New(st, resolver, sites, themes, current, logOut)
	handler := middleware.ForceHTTPS(cfg.HTTP.ForceHTTPS, app.Router())

	srv := server.New(cfg.HTTP.ListenAddr, handler)
	logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)
	if err := srv.ListenAndServe(); err != nil {
		logOut.Fatalw("http server", "err", err)
	}
}
