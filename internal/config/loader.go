// internal/config/loader.go
//
// Configuration loader and hot-reloader.
//
// Context
// -------
// Load() builds one immutable Config from three layers (highest precedence
// last):
//
//  1. Optional dotenv file at `<root>/conf/.env`.
//  2. `conf/global.yaml`.
//  3. Environment variables prefixed `VOYAGO_`, where `__` maps to "."
//     (e.g., VOYAGO_HTTP__LISTEN_ADDR → http.listen_addr).
//
// After merging, the tree is unmarshalled into typed structs, Vault
// references are resolved, the runtime root path is attached, and the
// result is validated and cached in an atomic.Pointer for lock-free
// reads.  Reload() runs Load() again and swaps the pointer.
//
// Notes
// -----
// • rootDir() climbs the cwd tree until it finds conf/global.yaml, so
//   `go run ./cmd/web` works from any sub-directory.
// • Early boot logs go through zap.S(); the console core is live before
//   the file logger is installed.
package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"

	"github.com/yanizio/voyago/internal/vault"
)

var current atomic.Pointer[Config]

/*──────────────────────────── root discovery ───────────────────────────────*/

// rootDir resolves VOYAGO_ROOT or climbs directories until conf/global.yaml
// appears.  Falls back to the bin/ heuristic for installed layouts.
func rootDir() string {
	if r := os.Getenv("VOYAGO_ROOT"); r != "" {
		return r
	}

	wd, _ := os.Getwd()
	dir := wd
	for {
		if _, err := os.Stat(filepath.Join(dir, "conf", "global.yaml")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	exe, _ := os.Executable()
	if filepath.Base(filepath.Dir(exe)) == "bin" {
		return filepath.Dir(filepath.Dir(exe))
	}
	return wd
}

/*─────────────────────────────── loader ───────────────────────────────────*/

// Load reads .env, YAML, and env overrides, resolves secrets, validates,
// and caches the Config.
func Load(ctx context.Context) (*Config, error) {
	root := rootDir()
	zap.S().Debugw("config root resolved", "root", root)

	// Optional dotenv; silence missing-file errors.
	_ = godotenv.Load(filepath.Join(root, "conf", ".env"))

	k := koanf.New(".")

	yamlPath := filepath.Join(root, "conf", "global.yaml")
	if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
		zap.S().Errorw("config yaml load failed", "file", yamlPath, "err", err)
		return nil, err
	}

	// VOYAGO_STORAGE__DSN → storage.dsn
	if err := k.Load(env.Provider("VOYAGO_", ".", func(s string) string {
		return strings.ToLower(strings.ReplaceAll(s, "__", "."))
	}), nil); err != nil {
		zap.S().Errorw("config env overlay failed", "err", err)
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		zap.S().Errorw("config unmarshal failed", "err", err)
		return nil, err
	}

	if err := resolveSecrets(ctx, &cfg); err != nil {
		zap.S().Errorw("config secret resolution failed", "err", err)
		return nil, err
	}

	cfg.Paths.Root = root
	if err := validateStruct(&cfg); err != nil {
		zap.S().Errorw("config validation failed", "err", err)
		return nil, err
	}

	current.Store(&cfg)
	zap.S().Infow("config loaded",
		"listen_addr", cfg.HTTP.ListenAddr,
		"storage_driver", cfg.Storage.Driver,
		"root", cfg.Paths.Root,
	)
	return &cfg, nil
}

// resolveSecrets replaces vault: references in the Storage section.  The
// Vault client is only dialed when a reference is actually present.
func resolveSecrets(ctx context.Context, cfg *Config) error {
	if !vault.IsRef(cfg.Storage.Password) {
		return nil
	}
	cli, err := vault.New(ctx, zap.S().Infof)
	if err != nil {
		return err
	}
	pw, err := cli.Resolve(ctx, cfg.Storage.Password)
	if err != nil {
		return err
	}
	cfg.Storage.Password = pw
	return nil
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

func Get() *Config { return current.Load() }

func Reload(ctx context.Context) error { _, err := Load(ctx); return err }
