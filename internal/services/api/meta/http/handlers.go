// Package http provides the root, health and meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"adperf/internal/core/resultcache"
	"adperf/internal/core/version"
	"adperf/internal/modkit/httpkit"
	"adperf/internal/platform/store"
)

// Title is the API name served at the root
const Title = "Ad Performance Tracker API"

// readyTimeout bounds all dependency pings of one readiness probe
const readyTimeout = 2 * time.Second

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	// Checks pings the configured storage backends, nil reports none
	Checks func(stdctx.Context) []store.Check
	// CacheStats reports result cache counters, nil reports none
	CacheStats func() map[string]resultcache.Stats
}

type handlers struct {
	deps Deps
}

// Register mounts the root routes and the /meta group
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/", h.root)
	httpkit.Get(r, "/health", h.health)

	r.Route("/meta", func(mr httpkit.Router) {
		httpkit.Get(mr, "/ready", h.ready)
		httpkit.Get(mr, "/version", h.version)
		httpkit.Get(mr, "/service", h.service)
		httpkit.Get(mr, "/cache", h.cache)
	})
}

// RootResponse names the API
type RootResponse struct {
	Message string `json:"message" example:"Ad Performance Tracker API"`
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"clickhouse"`
	Status string `json:"status" example:"ok"` // ok fail
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:9000 connect: connection refused"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2025-09-03T13:05:00Z"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"    example:"adperf-api"`
	Started string `json:"started" example:"2025-09-03T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// @Summary API name
// @Tags Meta
// @Produce json
// @Success 200 {object} RootResponse ok
// @Router / [get]
func (h *handlers) root(_ *http.Request) (any, error) {
	return RootResponse{Message: Title}, nil
}

// @Summary Liveness check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse ok
// @Router /health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{Status: "ok"}, nil
}

// @Summary Readiness probe with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse ok
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	out := ReadyResponse{Status: "ok", Checks: []ReadyCheck{}}
	if h.deps.Checks != nil {
		for _, c := range h.deps.Checks(ctx) {
			rc := ReadyCheck{Name: c.Name, Status: "ok"}
			if c.Err != nil {
				rc.Status, rc.Error = "fail", c.Err.Error()
				out.Status = "fail"
			}
			out.Checks = append(out.Checks, rc)
		}
	}
	out.Now = time.Now().UTC().Format(time.RFC3339)
	return out, nil
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo ok
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse ok
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(time.Since(h.deps.StartedAt) / time.Second),
	}, nil
}

// @Summary Result cache counters per table
// @Tags Meta
// @Produce json
// @Success 200 {object} map[string]resultcache.Stats ok
// @Router /meta/cache [get]
func (h *handlers) cache(_ *http.Request) (any, error) {
	if h.deps.CacheStats == nil {
		return map[string]resultcache.Stats{}, nil
	}
	return h.deps.CacheStats(), nil
}
