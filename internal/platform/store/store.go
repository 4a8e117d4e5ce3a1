// Package store holds the optional storage backends behind small seams:
// the columnar warehouse (clickhouse) for reads and a relational database
// (postgres or embedded sqlite) for the settings document
package store

import (
	"context"
	"errors"
	"reflect"

	"adperf/internal/platform/logger"

	"github.com/jackc/pgx/v5"
)

// ErrNoRows is what Row.Scan returns on every relational backend when nothing matched
var ErrNoRows = pgx.ErrNoRows

// Row is a single result row
type Row interface {
	Scan(dest ...any) error
}

// Rows is a result set, Columns is valid before the first Next
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// ColumnTyper is implemented by result sets that know each column's Go scan
// type and server type name; drivers that refuse *any targets need it
type ColumnTyper interface {
	ScanTypes() []reflect.Type
	DatabaseTypes() []string
}

// CommandTag describes a finished statement
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the statement surface repos use
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner is a RowQuerier that can also run fn inside one transaction
// fn's error rolls the transaction back and is returned as is
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is the read-only warehouse seam
type Clickhouse interface {
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Ping(ctx context.Context) error
	Close() error
}

// Store carries whichever backends were enabled, the rest stay nil
type Store struct {
	Log logger.Logger

	PG   TxRunner
	Lite TxRunner
	CH   Clickhouse
}

// Check is one backend's readiness
type Check struct {
	Name string
	Err  error
}

// Checks pings every configured backend in a fixed order: pg, sqlite, clickhouse
func (s *Store) Checks(ctx context.Context) []Check {
	if s == nil {
		return nil
	}
	var out []Check
	for _, b := range s.backends() {
		if p, ok := b.seam.(interface{ Ping(context.Context) error }); ok {
			out = append(out, Check{Name: b.name, Err: p.Ping(ctx)})
		}
	}
	return out
}

// Close closes every configured backend and joins their errors
func (s *Store) Close(context.Context) error {
	var errs []error
	for _, b := range s.backends() {
		if c, ok := b.seam.(interface{ Close() error }); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}

type backend struct {
	name string
	seam any
}

func (s *Store) backends() []backend {
	var out []backend
	if s.PG != nil {
		out = append(out, backend{"pg", s.PG})
	}
	if s.Lite != nil {
		out = append(out, backend{"sqlite", s.Lite})
	}
	if s.CH != nil {
		out = append(out, backend{"clickhouse", s.CH})
	}
	return out
}
