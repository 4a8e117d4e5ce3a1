// Package module wires the warehouse analytics endpoints into the API
package module

import (
	"time"

	modkit "adperf/internal/modkit"
	"adperf/internal/platform/config"
	phttp "adperf/internal/platform/net/http"
	"adperf/internal/services/api/warehouse/domain"
	whhttp "adperf/internal/services/api/warehouse/http"
	whrepo "adperf/internal/services/api/warehouse/repo"
	whsvc "adperf/internal/services/api/warehouse/service"
)

// DefaultCacheTTL is used when WAREHOUSE_CACHE_TTL is unset
const DefaultCacheTTL = 300 * time.Second

// Config locates the ad table and tunes the service
type Config struct {
	Location whrepo.Location
	Columns  whrepo.Columns
	Service  whsvc.Config
}

// ConfigFrom reads WAREHOUSE_* keys from c
func ConfigFrom(c config.Conf) Config {
	w := c.Prefix("WAREHOUSE_")
	def := whrepo.DefaultColumns()
	return Config{
		Location: whrepo.Location{
			Database: w.MayString("DATABASE", ""),
			Table:    w.MayString("TABLE", ""),
		},
		Columns: whrepo.Columns{
			AdName:    w.MayString("AD_NAME_COLUMN", def.AdName),
			AdsetName: w.MayString("ADSET_NAME_COLUMN", def.AdsetName),
			Spend:     w.MayString("SPEND_COLUMN", def.Spend),
			Revenue:   w.MayString("REVENUE_COLUMN", def.Revenue),
			Date:      w.MayString("DATE_COLUMN", def.Date),
		},
		Service: whsvc.Config{
			CacheTTL:     w.MayDuration("CACHE_TTL", DefaultCacheTTL),
			QueryTimeout: w.MayDuration("QUERY_TIMEOUT", 0),
		},
	}
}

// Ports is the port set other modules read
type Ports struct {
	Service domain.ServicePort
	Cache   domain.CacheStatsPort
}

// Module implements the warehouse module
type Module struct {
	modkit.Base
	svc *whsvc.Svc
}

// New constructs the warehouse module from WAREHOUSE_* configuration
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	return NewWithConfig(deps, ConfigFrom(deps.Cfg), opts...)
}

// NewWithConfig constructs the module with explicit configuration
// a missing connection or table leaves the service unconfigured, every call then answers 503
func NewWithConfig(deps modkit.Deps, cfg Config, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("warehouse"),
		modkit.WithPrefix("/bigquery"),
	}, opts...)...)

	var r whrepo.Repo
	switch {
	case deps.CH == nil:
		deps.Log.Warn().Msg("warehouse: no clickhouse connection, analytics endpoints disabled")
	case cfg.Location.Database == "" || cfg.Location.Table == "":
		deps.Log.Warn().Msg("warehouse: WAREHOUSE_DATABASE or WAREHOUSE_TABLE unset, analytics endpoints disabled")
	default:
		chRepo, err := whrepo.NewCH(deps.CH, cfg.Location, cfg.Columns)
		if err != nil {
			deps.Log.Error().Err(err).Msg("warehouse: bad table configuration, analytics endpoints disabled")
			break
		}
		r = chRepo
	}

	svc := whsvc.New(r, cfg.Service)
	m := &Module{svc: svc}
	m.Base = modkit.NewBase(b, func(rr phttp.Router) { whhttp.Register(rr, svc) })
	m.SetPorts(Ports{Service: svc, Cache: svc})

	deps.Log.Info().
		Bool("configured", svc.Configured()).
		Str("database", cfg.Location.Database).
		Str("table", cfg.Location.Table).
		Dur("cache_ttl", cfg.Service.CacheTTL).
		Msg("warehouse module ready")
	return m
}
