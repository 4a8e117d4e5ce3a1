package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"adperf/internal/platform/store/sqlite"
	"adperf/internal/platform/store/sqltrace"
)

// sqlExecer is the statement surface shared by *sql.DB and *sql.Tx
type sqlExecer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// sqliteAdapter wraps sqlite.DB and implements RowQuerier + TxRunner
type sqliteAdapter struct {
	db *sqlite.DB
	sqliteQuerier
}

func newSQLiteAdapter(db *sqlite.DB) *sqliteAdapter {
	return &sqliteAdapter{
		db:            db,
		sqliteQuerier: sqliteQuerier{x: db.SQL, tracer: db.Tracer, slowMs: db.SlowMs},
	}
}

func (a *sqliteAdapter) Ping(ctx context.Context) error {
	if a == nil || a.db == nil || a.db.SQL == nil {
		return errors.New("sqlite: nil adapter")
	}
	return a.db.SQL.PingContext(ctx)
}

func (a *sqliteAdapter) Close() error { return a.db.Close() }

func (a *sqliteAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.db.SQL.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(sqliteQuerier{x: tx, tracer: a.tracer, slowMs: a.slowMs}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// sqliteQuerier runs traced statements on either the database or a transaction
type sqliteQuerier struct {
	x      sqlExecer
	tracer sqltrace.QueryTracer
	slowMs int
}

func (q sqliteQuerier) Exec(ctx context.Context, query string, args ...any) (CommandTag, error) {
	start := time.Now()
	res, err := q.x.ExecContext(ctx, query, args...)
	sqltrace.Emit(ctx, q.tracer, q.slowMs, query, args, start, err)
	if err != nil {
		return nil, err
	}
	return sqlTag{res: res, stmt: query}, nil
}

func (q sqliteQuerier) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := q.x.QueryContext(ctx, query, args...)
	sqltrace.Emit(ctx, q.tracer, q.slowMs, query, args, start, err)
	if err != nil {
		return nil, err
	}
	return &sqlRows{r: rs}, nil
}

// QueryRow maps sql.ErrNoRows to ErrNoRows so repos check one sentinel
func (q sqliteQuerier) QueryRow(ctx context.Context, query string, args ...any) Row {
	start := time.Now()
	r := q.x.QueryRowContext(ctx, query, args...)
	return tracedRow{
		scan: func(dst ...any) error {
			if err := r.Scan(dst...); !errors.Is(err, sql.ErrNoRows) {
				return err
			}
			return ErrNoRows
		},
		done: func(err error) { sqltrace.Emit(ctx, q.tracer, q.slowMs, query, args, start, err) },
	}
}

type sqlRows struct {
	r    *sql.Rows
	cols []string
}

func (x *sqlRows) Next() bool            { return x.r.Next() }
func (x *sqlRows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x *sqlRows) Err() error            { return x.r.Err() }
func (x *sqlRows) Close()                { _ = x.r.Close() }
func (x *sqlRows) Columns() []string {
	if x.cols == nil {
		x.cols, _ = x.r.Columns()
	}
	return x.cols
}

// sqlTag reports the affected row count of a database/sql result
type sqlTag struct {
	res  sql.Result
	stmt string
}

func (t sqlTag) String() string { return sqltrace.Compact(t.stmt) }

func (t sqlTag) RowsAffected() int64 {
	n, err := t.res.RowsAffected()
	if err != nil {
		return -1
	}
	return n
}
