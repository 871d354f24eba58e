// internal/server/timeouts.go
//
// HTTP server constructor with hardening defaults: a read timeout against
// slow-loris headers, a write cap on total response time, and an idle
// timeout for keep-alive connections.  Centralised here so cmd/web does
// not repeat the boilerplate.
package server

import (
	"net/http"
	"time"
)

// New constructs an *http.Server with production timeouts.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
