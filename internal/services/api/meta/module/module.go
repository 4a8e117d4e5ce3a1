// Package module wires the root, health and meta endpoints into the API
package module

import (
	"time"

	"adperf/internal/core/resultcache"
	"adperf/internal/core/version"
	modkit "adperf/internal/modkit"
	phttp "adperf/internal/platform/net/http"
	metahttp "adperf/internal/services/api/meta/http"
)

// CacheStatsPort is read from the module that owns the result caches
type CacheStatsPort interface {
	CacheStats() map[string]resultcache.Stats
}

// Module implements the meta module
type Module struct {
	modkit.Base
	startedAt time.Time
}

// New constructs the meta module, it mounts at the router root
// pass the cache owner's port with modkit.WithPorts to expose /meta/cache
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("meta")}, opts...)...)

	m := &Module{startedAt: time.Now()}
	hd := metahttp.Deps{
		ServiceName: version.ServiceName,
		StartedAt:   m.startedAt,
		Checks:      deps.Store.Checks,
	}
	if p, ok := b.Ports.(CacheStatsPort); ok {
		hd.CacheStats = p.CacheStats
	}
	m.Base = modkit.NewBase(b, func(r phttp.Router) { metahttp.Register(r, hd) })
	return m
}
