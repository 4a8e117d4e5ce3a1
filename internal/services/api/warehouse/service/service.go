// Package service answers the analytics endpoints from the warehouse through a TTL result cache
package service

import (
	"context"
	"time"

	"adperf/internal/core/acronym"
	"adperf/internal/core/resultcache"
	perr "adperf/internal/platform/errors"
	"adperf/internal/platform/logger"
	"adperf/internal/platform/metrics"
	"adperf/internal/services/api/warehouse/domain"
	"adperf/internal/services/api/warehouse/repo"

	"golang.org/x/sync/singleflight"
)

// cache table names, also used as metric labels
const (
	TableRows    = "rows"
	TableSummary = "summary"
)

// ErrNotConfigured is returned by every operation while the warehouse is unset
var ErrNotConfigured = perr.Unavailablef("warehouse not configured: set SERVICE_CLICKHOUSE_DBURL, WAREHOUSE_DATABASE and WAREHOUSE_TABLE")

// Service defines the warehouse service contract
type Service interface {
	domain.ServicePort
	domain.CacheStatsPort
}

// Config tunes caching and query deadlines
type Config struct {
	// CacheTTL is how long a result stays fresh, zero or less disables caching
	CacheTTL time.Duration
	// QueryTimeout bounds each warehouse round trip, zero means none
	QueryTimeout time.Duration
}

// Svc implements Service
type Svc struct {
	repo    repo.Repo
	timeout time.Duration

	rows    *resultcache.Cache[[]domain.AggregateRow]
	summary *resultcache.Cache[domain.SummaryResult]
	flight  singleflight.Group
}

var _ Service = (*Svc)(nil)

// New constructs the service, a nil repo reports every call as not configured
func New(r repo.Repo, cfg Config, opts ...resultcache.Option) *Svc {
	return &Svc{
		repo:    r,
		timeout: cfg.QueryTimeout,
		rows:    resultcache.New[[]domain.AggregateRow](cfg.CacheTTL, opts...),
		summary: resultcache.New[domain.SummaryResult](cfg.CacheTTL, opts...),
	}
}

// Configured reports whether a warehouse is wired
func (s *Svc) Configured() bool { return s.repo != nil }

// Sample returns a few raw rows, never cached
func (s *Svc) Sample(ctx context.Context) ([]domain.SampleRow, error) {
	if s.repo == nil {
		return nil, ErrNotConfigured
	}
	var out []domain.SampleRow
	err := s.query(ctx, "sample", func(ctx context.Context) error {
		rows, err := s.repo.Sample(ctx)
		out = rows
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Performance returns spend and cROAS per ad and ad set for one employee
func (s *Svc) Performance(ctx context.Context, q domain.PerformanceQuery) ([]domain.AggregateRow, error) {
	if s.repo == nil {
		return nil, ErrNotConfigured
	}
	key := domain.Key(q.EmployeeAcronym, q.Filter())
	return cached(ctx, s, s.rows, TableRows, key, func(ctx context.Context) ([]domain.AggregateRow, error) {
		rows, err := s.repo.Rows(ctx, filterFor(q))
		if err != nil {
			return nil, err
		}
		out := make([]domain.AggregateRow, 0, len(rows))
		for _, r := range rows {
			out = append(out, domain.AggregateRow{
				AdName:    r.AdName,
				AdsetName: r.AdsetName,
				Spend:     r.Spend,
				Croas:     r.Croas,
			})
		}
		return out, nil
	})
}

// Summary returns total spend and blended cROAS for one employee
func (s *Svc) Summary(ctx context.Context, q domain.PerformanceQuery) (domain.SummaryResult, error) {
	if s.repo == nil {
		return domain.SummaryResult{}, ErrNotConfigured
	}
	key := domain.Key(q.EmployeeAcronym, q.Filter())
	return cached(ctx, s, s.summary, TableSummary, key, func(ctx context.Context) (domain.SummaryResult, error) {
		sum, err := s.repo.Summary(ctx, filterFor(q))
		if err != nil {
			return domain.SummaryResult{}, err
		}
		return domain.SummaryResult{
			TotalSpend:   sum.TotalSpend,
			BlendedCroas: sum.BlendedCroas,
			RowCount:     sum.RowCount,
		}, nil
	})
}

// CacheStats reports counters for both cache tables
func (s *Svc) CacheStats() map[string]resultcache.Stats {
	return map[string]resultcache.Stats{
		TableRows:    s.rows.Stats(),
		TableSummary: s.summary.Stats(),
	}
}

// cached serves key from c or loads it once for all concurrent callers
// failures are returned to every waiter and never stored
func cached[V any](ctx context.Context, s *Svc, c *resultcache.Cache[V], table, key string, load func(context.Context) (V, error)) (V, error) {
	var zero V
	if v, ok := c.Get(key); ok {
		metrics.RecordCacheLookup(table, true)
		logger.C(ctx).Trace().Str("table", table).Str("key", key).Msg("warehouse cache hit")
		return v, nil
	}
	metrics.RecordCacheLookup(table, false)
	// the miss may have evicted an expired entry
	metrics.SetCacheEntries(table, c.Len())
	logger.C(ctx).Trace().Str("table", table).Str("key", key).Msg("warehouse cache miss")

	ch := s.flight.DoChan(table+"\x00"+key, func() (any, error) {
		// a flight that just finished may have filled key, the lookup above already counted
		if v, ok := c.Peek(key); ok {
			return v, nil
		}
		var v V
		// the flight outlives any single caller
		err := s.query(context.WithoutCancel(ctx), table, func(ctx context.Context) error {
			var err error
			v, err = load(ctx)
			return err
		})
		if err != nil {
			return nil, err
		}
		c.Put(key, v)
		metrics.SetCacheEntries(table, c.Len())
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(V), nil
	}
}

// query runs one warehouse round trip under the configured deadline
func (s *Svc) query(ctx context.Context, op string, fn func(context.Context) error) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	metrics.RecordWarehouseQuery(op, elapsed, err)

	if err != nil {
		logger.C(ctx).Warn().Err(err).Str("op", op).Dur("elapsed", elapsed).Msg("warehouse query failed")
		return perr.Upstreamf("warehouse request failed: %v", err)
	}
	logger.C(ctx).Debug().Str("op", op).Dur("elapsed", elapsed).Msg("warehouse query")
	return nil
}

func filterFor(q domain.PerformanceQuery) repo.Filter {
	f := repo.Filter{
		Pattern:      acronym.Pattern(q.EmployeeAcronym),
		PriorityOnly: q.P1Only,
		Marker:       domain.P1Marker,
	}
	if start, end, ok := q.Filter().DateRange(); ok {
		f.Start, f.End = &start, &end
	}
	return f
}
