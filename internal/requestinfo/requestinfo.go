// internal/requestinfo/requestinfo.go
//
// Per-request metadata for access logs.
//
// Context
// -------
// Storefront owners read their traffic through the platform's logs, so
// every request line carries a parsed user-agent fingerprint and, when a
// MaxMind database is configured, best-effort geolocation.  The structs
// here are inert — no handles, no buffers — and safe to JSON-encode.
//
// Dependencies
// ------------
// • github.com/avct/uasurfer          (UA parsing)
// • github.com/oschwald/geoip2-golang (MaxMind lookup)
package requestinfo

import (
	"net"
	"net/http"
	"strings"

	"github.com/avct/uasurfer"
	"github.com/oschwald/geoip2-golang"
)

// UA holds the parsed user-agent properties worth logging.
type UA struct {
	Browser string // "Chrome", "Firefox", …
	OS      string // "MacOSX", "Windows", "Android", …
	Device  string // "Computer", "Phone", "Tablet", …
	IsBot   bool
}

// Geo holds IP-derived location hints; empty when the DB has no match or
// geo is disabled.
type Geo struct {
	CountryISO string // "US", "FR", …
	City       string
}

// Info is the combined per-request metadata.
type Info struct {
	UA  UA
	Geo Geo
	IP  string
}

// geoReader is nil when no database is configured; lookups then return
// empty Geo values.  Concurrent reads on an open reader are safe.
var geoReader *geoip2.Reader

// InitGeo opens the MaxMind database at dbPath.  An empty path disables
// geolocation; a missing or corrupt file is reported, not fatal.
func InitGeo(dbPath string) error {
	if dbPath == "" {
		return nil
	}
	r, err := geoip2.Open(dbPath)
	if err != nil {
		return err
	}
	geoReader = r
	return nil
}

// Collect parses the request into an Info.
func Collect(r *http.Request) Info {
	info := Info{IP: clientIP(r)}

	if raw := r.UserAgent(); raw != "" {
		ua := uasurfer.Parse(raw)
		info.UA = UA{
			Browser: strings.TrimPrefix(ua.Browser.Name.String(), "Browser"),
			OS:      strings.TrimPrefix(ua.OS.Name.String(), "OS"),
			Device:  strings.TrimPrefix(ua.DeviceType.String(), "Device"),
			IsBot:   ua.IsBot(),
		}
	}

	if geoReader != nil {
		if ip := net.ParseIP(info.IP); ip != nil {
			if rec, err := geoReader.City(ip); err == nil {
				info.Geo.CountryISO = rec.Country.IsoCode
				info.Geo.City = rec.City.Names["en"]
			}
		}
	}
	return info
}

// clientIP returns the remote address without the port.  The platform
// fronts its own TLS, so RemoteAddr is authoritative; X-Forwarded-For is
// deliberately not trusted here.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
