package store

import (
	"context"
	"fmt"
	"time"

	"adperf/internal/platform/logger"
	chx "adperf/internal/platform/store/ch"
	"adperf/internal/platform/store/pg"
	"adperf/internal/platform/store/sqlite"
	"adperf/internal/platform/store/sqltrace"

	"github.com/cenkalti/backoff/v4"
)

// Option adjusts the Store before any backend opens
type Option func(*Store)

// WithLogger sets the logger backends trace and report through
func WithLogger(l logger.Logger) Option { return func(s *Store) { s.Log = l } }

// Open opens every backend cfg enables
// a failure closes whatever already opened
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		o(s)
	}

	steps := []struct {
		on   bool
		open func() error
	}{
		{cfg.PG.Enabled, func() (err error) { s.PG, err = openPG(ctx, cfg, s); return }},
		{cfg.SQLite.Enabled, func() (err error) { s.Lite, err = openSQLite(ctx, cfg, s); return }},
		{cfg.CH.Enabled, func() (err error) { s.CH, err = openCH(ctx, cfg, s); return }},
	}
	for _, st := range steps {
		if !st.on {
			continue
		}
		if err := st.open(); err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
	}
	return s, nil
}

// seams for tests
var (
	openPGClient = pg.Open
	pingPool     = func(ctx context.Context, p *pg.PG) error { return p.Pool.Ping(ctx) }
	pgBackOff    = func() backoff.BackOff {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = 150 * time.Millisecond
		b.MaxInterval = 2 * time.Second
		b.MaxElapsedTime = 0
		b.Reset()
		return b
	}
)

func tracerFor(on bool, s *Store, backend string) sqltrace.QueryTracer {
	if !on {
		return nil
	}
	return sqltrace.Logger(s.Log, backend)
}

// openPG returns once the pool answers a ping, retrying with backoff
// ConnectRetries bounds the attempts, default 20, and each ping gets PingTimeout, default 3s
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	p, err := openPGClient(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
		AppName:  cfg.AppName,
	}, tracerFor(cfg.PG.LogSQL, s, "pg"))
	if err != nil {
		return nil, err
	}

	attempts := cfg.PG.ConnectRetries
	if attempts <= 0 {
		attempts = 20
	}
	timeout := cfg.PG.PingTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	n := 0
	ping := func() error {
		n++
		pctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return pingPool(pctx, p)
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(pgBackOff(), uint64(attempts-1)), ctx)
	err = backoff.RetryNotify(ping, policy, func(err error, wait time.Duration) {
		s.Log.Warn().Err(err).Int("attempt", n).Dur("retry_in", wait).Msg("postgres not ready")
	})
	switch {
	case err == nil:
		return newPGAdapter(p), nil
	case ctx.Err() != nil:
		p.Close()
		return nil, ctx.Err()
	default:
		p.Close()
		return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", n, err)
	}
}

func openSQLite(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	db, err := sqlite.Open(ctx, sqlite.Config{
		Path:          cfg.SQLite.Path,
		BusyTimeoutMs: cfg.SQLite.BusyTimeoutMs,
		SlowMs:        cfg.SQLite.SlowQueryMs,
	}, tracerFor(cfg.SQLite.LogSQL, s, "sqlite"))
	if err != nil {
		return nil, err
	}
	return newSQLiteAdapter(db), nil
}

// openCH never dials eagerly; PingOnOpen only reports reachability
func openCH(ctx context.Context, cfg Config, s *Store) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{
		URL:          cfg.CH.URL,
		DialTimeout:  cfg.CH.DialTimeout,
		MaxOpenConns: cfg.CH.MaxOpenConns,
		Role:         "api",
		Tag:          cfg.AppName,
	})
	if err != nil {
		return nil, err
	}
	a := newCHAdapter(c)
	if !cfg.CH.PingOnOpen {
		return a, nil
	}
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := a.Ping(pctx); err != nil {
		s.Log.Warn().Err(err).Msg("clickhouse unreachable at startup, queries will fail until it answers")
	} else {
		s.Log.Info().Msg("clickhouse reachable")
	}
	return a, nil
}
