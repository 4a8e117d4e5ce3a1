package store

import (
	"context"
	"errors"
	"reflect"

	"adperf/internal/platform/store/ch"
)

// newCHAdapter wraps an opened *ch.CH as the store.Clickhouse seam
func newCHAdapter(c *ch.CH) Clickhouse {
	return &clickhouseAdapter{inner: c}
}

// clickhouseAdapter adapts *ch.CH to the store.Clickhouse interface
type clickhouseAdapter struct {
	inner *ch.CH
}

var _ Clickhouse = (*clickhouseAdapter)(nil)

func (a *clickhouseAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	r, err := a.inner.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return &chRows{r: r}, nil
}

// Ping verifies connectivity with ClickHouse
func (a *clickhouseAdapter) Ping(ctx context.Context) error {
	if a == nil || a.inner == nil {
		return errors.New("store: nil clickhouse adapter")
	}
	return a.inner.Ping(ctx)
}

func (a *clickhouseAdapter) Close() error { return a.inner.Close() }

// chRows wraps ch.Rows as store.Rows and exposes server column types
type chRows struct {
	r ch.Rows
}

var _ ColumnTyper = (*chRows)(nil)

func (r *chRows) Next() bool             { return r.r.Next() }
func (r *chRows) Scan(dest ...any) error { return r.r.Scan(dest...) }
func (r *chRows) Err() error             { return r.r.Err() }
func (r *chRows) Close()                 { _ = r.r.Close() }
func (r *chRows) Columns() []string      { return r.r.Columns() }

func (r *chRows) ScanTypes() []reflect.Type {
	cts := r.r.ColumnTypes()
	out := make([]reflect.Type, len(cts))
	for i, c := range cts {
		out[i] = c.ScanType()
	}
	return out
}

func (r *chRows) DatabaseTypes() []string {
	cts := r.r.ColumnTypes()
	out := make([]string, len(cts))
	for i, c := range cts {
		out[i] = c.DatabaseTypeName()
	}
	return out
}
