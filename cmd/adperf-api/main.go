// @title         Ad Performance Tracker API
// @version       0.1.0
// @description   Spend and cROAS analytics over the ad warehouse, plus the shared settings document

// Command adperf-api serves the ad performance and settings endpoints
//
// The OpenAPI document is regenerated with go generate and served when built with -tags swag
package main

//go:generate swag init --v3.1 --parseInternal -g main.go -d .,../../internal -o ../../internal/services/api/docs --outputTypes go

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adperf/internal/core/version"
	"adperf/internal/platform/config"
	"adperf/internal/platform/logger"
	phttp "adperf/internal/platform/net/http"
	"adperf/internal/platform/store"

	"adperf/internal/services/api"
)

func main() {
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")          // http surface
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // warehouse connection
	settingsCfg := root.Prefix("SETTINGS_")     // relational settings store

	logger.Init(logger.FromEnv())
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, storeConfig(chCfg, settingsCfg), store.WithLogger(*l))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// CORE_API_API_PORT
	srv := phttp.NewServer(apiCfg)

	api.Mount(srv.Router(), api.Options{
		Config:         root,
		Store:          st,
		Logger:         l,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
		EnableMetrics:  apiCfg.MayBool("METRICS", true),
		CORSOrigins:    apiCfg.MayCSV("CORS_ORIGINS", []string{"http://localhost:3000"}),
		Timeout:        apiCfg.MayDuration("REQUEST_TIMEOUT", 60*time.Second),
	})

	info := version.Info()
	l.Info().
		Str("addr", srv.Addr()).
		Str("version", info.Version).
		Str("commit", info.Commit).
		Msg("listening")

	if err := srv.Run(ctx); err != nil {
		l.Fatal().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("shutdown complete")
}

// storeConfig enables postgres when SETTINGS_DATABASE_URL is set and sqlite otherwise
// the warehouse stays disabled until SERVICE_CLICKHOUSE_DBURL is set
func storeConfig(chCfg, settingsCfg config.Conf) store.Config {
	cfg := store.Config{AppName: version.ServiceName}

	if url := settingsCfg.MayString("DATABASE_URL", ""); url != "" {
		cfg.PG = store.PGConfig{
			Enabled:     true,
			URL:         url,
			MaxConns:    int32(settingsCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: settingsCfg.MayInt("SLOW_MS", 500),
			LogSQL:      settingsCfg.MayBool("LOG_SQL", false),
		}
	} else {
		cfg.SQLite = store.SQLiteConfig{
			Enabled:     true,
			Path:        settingsCfg.MayString("DATABASE_PATH", "data/settings.db"),
			SlowQueryMs: settingsCfg.MayInt("SLOW_MS", 500),
			LogSQL:      settingsCfg.MayBool("LOG_SQL", false),
		}
	}

	if url := chCfg.MayString("DBURL", ""); url != "" {
		cfg.CH = store.CHConfig{
			Enabled:     true,
			URL:         url,
			DialTimeout: chCfg.MayDuration("DIAL_TIMEOUT", 10*time.Second),
			PingOnOpen:  true,
		}
	}
	return cfg
}
