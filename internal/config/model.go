// internal/config/model.go
//
// Typed configuration model for Voyago.
//
// Context
// -------
// These structs define the tree the loader assembles from three overlay
// layers: an optional `conf/.env` file, `conf/global.yaml`, and
// `VOYAGO_`-prefixed environment overrides (highest precedence).
//
// Storage secrets may be written as `vault:<mount/path>#<key>` references;
// the loader resolves them through internal/vault before validation, so
// the model only ever holds plain strings.
//
// Notes
// -----
// • Struct tags use `koanf:"…"`; Koanf ignores yaml tags.
// • The Paths block is runtime-resolved and must not appear in YAML.
package config

import (
	"fmt"
	"strings"
)

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

//
// Storage section
//

// Storage selects and parameterizes the record-store backend.  The DSN may
// carry one %s verb where the resolved password is spliced in, keeping the
// secret out of flat files.
type Storage struct {
	Driver   string `koanf:"driver"   validate:"required,oneof=memory mysql"`
	DSN      string `koanf:"dsn"      validate:"required_if=Driver mysql"`
	Password string `koanf:"password"`
	Seed     bool   `koanf:"seed"`
}

//
// Geo section
//

// Geo points at an optional MaxMind database for access-log enrichment.
// Empty path disables geo lookups.
type Geo struct {
	DBPath string `koanf:"db_path"`
}

//
// Paths section (runtime only)
//

// Paths is discovered at runtime; YAML must not set it.
type Paths struct {
	Root string
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads.
type Config struct {
	HTTP    HTTP    `koanf:"http"`
	Storage Storage `koanf:"storage"`
	Geo     Geo     `koanf:"geo"`
	Paths   Paths   `koanf:"-"`
}

// StorageDSN splices the resolved password into the DSN template when the
// template carries a %s verb; otherwise the DSN is returned as written.
func (c *Config) StorageDSN() string {
	if c.Storage.Password != "" && strings.Contains(c.Storage.DSN, "%s") {
		return fmt.Sprintf(c.Storage.DSN, c.Storage.Password)
	}
	return c.Storage.DSN
}
