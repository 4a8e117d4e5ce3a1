package store

import (
	"context"
	"errors"
	"time"

	"adperf/internal/platform/store/pg"
	"adperf/internal/platform/store/sqltrace"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgExecer is the statement surface shared by *pgxpool.Pool and pgx.Tx
type pgExecer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgAdapter is the postgres TxRunner, statements are traced when pg.PG has a tracer
type pgAdapter struct {
	p *pg.PG
	pgQuerier
}

func newPGAdapter(p *pg.PG) *pgAdapter {
	a := &pgAdapter{p: p, pgQuerier: pgQuerier{tracer: p.Tracer, slowMs: p.SlowMs}}
	if p.Pool != nil {
		a.x = p.Pool
	}
	return a
}

func (a *pgAdapter) Ping(ctx context.Context) error {
	if a.p == nil || a.p.Pool == nil {
		return errors.New("pg: pool not open")
	}
	return a.p.Pool.Ping(ctx)
}

func (a *pgAdapter) Close() error {
	a.p.Close()
	return nil
}

func (a *pgAdapter) Tx(ctx context.Context, fn func(RowQuerier) error) error {
	return pgx.BeginFunc(ctx, a.p.Pool, func(tx pgx.Tx) error {
		return fn(pgQuerier{x: tx, tracer: a.tracer, slowMs: a.slowMs})
	})
}

type pgQuerier struct {
	x      pgExecer
	tracer sqltrace.QueryTracer
	slowMs int
}

func (q pgQuerier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := q.x.Exec(ctx, sql, args...)
	sqltrace.Emit(ctx, q.tracer, q.slowMs, sql, args, start, err)
	return ct, err
}

func (q pgQuerier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := q.x.Query(ctx, sql, args...)
	sqltrace.Emit(ctx, q.tracer, q.slowMs, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return pgRows{rs}, nil
}

// QueryRow is traced when the row is scanned, pgx defers errors until then
func (q pgQuerier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	return tracedRow{
		scan: q.x.QueryRow(ctx, sql, args...).Scan,
		done: func(err error) { sqltrace.Emit(ctx, q.tracer, q.slowMs, sql, args, start, err) },
	}
}

// tracedRow reports the scan result to done
type tracedRow struct {
	scan func(...any) error
	done func(error)
}

func (r tracedRow) Scan(dst ...any) error {
	err := r.scan(dst...)
	r.done(err)
	return err
}

type pgRows struct{ pgx.Rows }

func (r pgRows) Columns() []string {
	fds := r.FieldDescriptions()
	cols := make([]string, len(fds))
	for i, fd := range fds {
		cols[i] = fd.Name
	}
	return cols
}
