// Package api composes the HTTP API from its modules
package api

import (
	"time"

	"adperf/internal/platform/config"
	"adperf/internal/platform/logger"
	"adperf/internal/platform/metrics"
	phttp "adperf/internal/platform/net/http"
	"adperf/internal/platform/store"

	"adperf/internal/modkit"
	"adperf/internal/modkit/httpkit"
	"adperf/internal/modkit/module"
	"adperf/internal/modkit/swaggerkit"

	metamod "adperf/internal/services/api/meta/module"
	settingsmod "adperf/internal/services/api/settings/module"
	whdomain "adperf/internal/services/api/warehouse/domain"
	whmod "adperf/internal/services/api/warehouse/module"
)

// Alias is the secondary prefix every module route is also served under
const Alias = "/api"

// Options are the API options
type Options struct {
	Config config.Conf
	Store  *store.Store
	Logger *logger.Logger

	EnableSwagger  bool
	EnableProfiler bool
	EnableMetrics  bool

	// CORSOrigins are the browser origins allowed to call the API
	CORSOrigins []string
	// Timeout bounds each request, 0 disables it
	Timeout time.Duration
	// SlowRequest marks access log lines as slow, default 2s
	SlowRequest time.Duration
}

// Modules builds the API modules in dependency order
// meta reads the warehouse cache stats so the warehouse is built first
func Modules(deps modkit.Deps) []module.Module {
	wh := whmod.New(deps)
	return []module.Module{
		wh,
		settingsmod.New(deps),
		metamod.New(deps, modkit.WithPorts(module.MustPortsOf[whdomain.CacheStatsPort](wh))),
	}
}

// Mount mounts the API service onto the given router
// the root router must not have routes yet, chi rejects Use after the first route
func Mount(r phttp.Router, opt Options) {
	log := logger.Get()
	if opt.Logger != nil {
		log = opt.Logger
	}
	slow := opt.SlowRequest
	if slow <= 0 {
		slow = 2 * time.Second
	}

	r.Use(httpkit.CommonStack(httpkit.StackOptions{
		CORSOrigins: opt.CORSOrigins,
		Timeout:     opt.Timeout,
		SlowRequest: slow,
		Metrics:     opt.EnableMetrics,
	})...)

	mods := Modules(modkit.DepsFrom(opt.Store, opt.Config, *log))
	httpkit.MountEverywhere(r, []string{Alias}, func(rr httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(rr)
		}
	})

	if opt.EnableMetrics {
		r.Handle("/metrics", metrics.Handler())
	}
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	log.Info().
		Int("modules", len(mods)).
		Bool("swagger", opt.EnableSwagger).
		Bool("profiler", opt.EnableProfiler).
		Bool("metrics", opt.EnableMetrics).
		Msg("api mounted")
}
