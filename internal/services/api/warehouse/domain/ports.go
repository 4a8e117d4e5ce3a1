package domain

import (
	"context"

	"adperf/internal/core/resultcache"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Sample(ctx context.Context) ([]SampleRow, error)
	Performance(ctx context.Context, q PerformanceQuery) ([]AggregateRow, error)
	Summary(ctx context.Context, q PerformanceQuery) (SummaryResult, error)
}

// CacheStatsPort exposes the result cache counters
type CacheStatsPort interface {
	CacheStats() map[string]resultcache.Stats
}
