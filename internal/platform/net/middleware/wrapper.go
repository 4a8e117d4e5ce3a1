// Package middleware holds the HTTP middleware the API stack is built from:
// chi's bundle behind project names plus the access log and panic recovery
package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// Middleware wraps a handler
type Middleware = func(http.Handler) http.Handler

var (
	// RequestID reuses an incoming X-Request-Id or mints one, readable through net.RequestID
	RequestID Middleware = chimw.RequestID
	// RealIP trusts X-Real-IP and X-Forwarded-For for RemoteAddr
	RealIP Middleware = chimw.RealIP
	// NoCache marks every response uncacheable
	NoCache Middleware = chimw.NoCache
	// StripSlashes routes /settings/ as /settings
	StripSlashes Middleware = chimw.StripSlashes
)

// Timeout cancels the request context after d, d <= 0 disables it
func Timeout(d time.Duration) Middleware {
	if d <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return chimw.Timeout(d)
}

// Compress gzips or deflates compressible responses at level
func Compress(level int) Middleware { return chimw.NewCompressor(level).Handler }

// CORS admits browser calls from origins for the verbs and headers the API serves
func CORS(origins ...string) Middleware {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	})
}
