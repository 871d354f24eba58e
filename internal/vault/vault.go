// internal/vault/vault.go
//
// HashiCorp Vault client for secret references in configuration.
//
// Context
// -------
// Operators keep the record-store password (and any future secret) in a
// KV-v2 mount and write `vault:<mount/path>#<key>` where the plain value
// would go.  The config loader calls Resolve for each such reference
// during boot.  Reads are cached for a short TTL so a config reload does
// not hammer Vault, and the login token is renewed in the background for
// long-lived processes.
//
// Environment
// -----------
// • VAULT_ADDR  – scheme and host of the Vault server.
// • VAULT_TOKEN – initial token.
package vault

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	vaultapi "github.com/hashicorp/vault/api"
)

// RefPrefix marks a config value as a Vault reference.
const RefPrefix = "vault:"

const cacheTTL = 5 * time.Minute

// IsRef reports whether a config value is a Vault reference.
func IsRef(v string) bool { return strings.HasPrefix(v, RefPrefix) }

// Client wraps the Vault SDK.  Safe for concurrent use; construct once at
// boot with New.
type Client struct {
	api   *vaultapi.Client
	logFn func(string, ...any)

	mu    sync.RWMutex
	cache map[string]cached
}

type cached struct {
	val string
	exp time.Time
}

// New builds a client from the standard VAULT_* environment and starts a
// background token-renewal loop tied to ctx.
func New(ctx context.Context, logFn func(string, ...any)) (*Client, error) {
	if logFn == nil {
		logFn = func(string, ...any) {}
	}

	cfg := vaultapi.DefaultConfig()
	if err := cfg.ReadEnvironment(); err != nil {
		return nil, fmt.Errorf("vault env: %w", err)
	}
	api, err := vaultapi.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault client: %w", err)
	}
	if tok := os.Getenv("VAULT_TOKEN"); tok != "" {
		api.SetToken(tok)
	}

	c := &Client{api: api, logFn: logFn, cache: make(map[string]cached)}
	go c.renewLoop(ctx)
	return c, nil
}

// Resolve turns "vault:<mount/path>#<key>" into the secret value.  Values
// without the prefix pass through untouched.
func (c *Client) Resolve(ctx context.Context, ref string) (string, error) {
	if !IsRef(ref) {
		return ref, nil
	}

	spec := strings.TrimPrefix(ref, RefPrefix)
	path, key, ok := strings.Cut(spec, "#")
	if !ok || path == "" || key == "" {
		return "", fmt.Errorf("malformed vault reference %q", ref)
	}

	c.mu.RLock()
	if cv, hit := c.cache[spec]; hit && time.Now().Before(cv.exp) {
		c.mu.RUnlock()
		return cv.val, nil
	}
	c.mu.RUnlock()

	mount, rel, _ := strings.Cut(path, "/")
	sec, err := c.api.KVv2(mount).Get(ctx, rel)
	if err != nil {
		return "", fmt.Errorf("vault read %s: %w", path, err)
	}
	raw, ok := sec.Data[key]
	if !ok {
		return "", fmt.Errorf("key %q not in secret %q", key, path)
	}
	val, ok := raw.(string)
	if !ok {
		return "", errors.New("vault value is not a string")
	}

	c.mu.Lock()
	c.cache[spec] = cached{val: val, exp: time.Now().Add(cacheTTL)}
	c.mu.Unlock()
	return val, nil
}

// renewLoop keeps the login token alive.  Non-renewable tokens are probed
// hourly in case the operator rotates them in place.
func (c *Client) renewLoop(ctx context.Context) {
	for {
		sec, err := c.api.Auth().Token().RenewSelf(0)
		switch {
		case err != nil:
			c.logFn("vault: token renew failed: %v", err)
			if !sleep(ctx, 30*time.Second) {
				return
			}
		case sec == nil || sec.Auth == nil || !sec.Auth.Renewable:
			if !sleep(ctx, time.Hour) {
				return
			}
		default:
			// Renew again at two thirds of the granted lease.
			lease := time.Duration(sec.Auth.LeaseDuration) * time.Second
			if lease < 30*time.Second {
				lease = 30 * time.Second
			}
			if !sleep(ctx, lease*2/3) {
				return
			}
		}
	}
}

// sleep waits d or until ctx is done; reports whether the loop should
// keep running.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
