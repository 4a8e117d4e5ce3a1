// Package repo persists the settings document on postgres or sqlite
package repo

import (
	"context"
	"errors"
	"fmt"

	modkit "adperf/internal/modkit"
	"adperf/internal/modkit/repokit"
	"adperf/internal/platform/store"
)

// Repo is the persistence surface for settings
type Repo interface {
	// Ensure creates the settings table when missing
	Ensure(ctx context.Context) error
	// Get returns the raw value stored under key, ok is false when absent
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Put upserts value under key and stamps updated_at
	Put(ctx context.Context, key, value string) error
}

// dialect holds the statements that differ between backends
type dialect struct {
	create string
	get    string
	put    string
}

var (
	pgDialect = dialect{
		create: `
create table if not exists settings (
  key text primary key,
  value text not null,
  updated_at timestamptz default now()
)`,
		get: `select value from settings where key = $1`,
		put: `
insert into settings (key, value, updated_at)
values ($1, $2, now())
on conflict (key) do update set
  value = excluded.value,
  updated_at = excluded.updated_at`,
	}

	sqliteDialect = dialect{
		create: `
create table if not exists settings (
  key text primary key,
  value text not null,
  updated_at text default (datetime('now'))
)`,
		get: `select value from settings where key = ?`,
		put: `
insert into settings (key, value, updated_at)
values (?, ?, datetime('now'))
on conflict (key) do update set
  value = excluded.value,
  updated_at = excluded.updated_at`,
	}
)

type (
	// PG binds the repo with postgres placeholders
	PG struct{}
	// SQLite binds the repo with sqlite placeholders
	SQLite struct{}
	// queries implements Repo for one dialect
	queries struct {
		q repokit.Queryer
		d dialect
	}
)

// NewPG returns the postgres binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// NewSQLite returns the sqlite binder
func NewSQLite() repokit.Binder[Repo] { return SQLite{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q, d: pgDialect} }

// Bind wires a Queryer to the repo
func (SQLite) Bind(q repokit.Queryer) Repo { return &queries{q: q, d: sqliteDialect} }

// BinderFor picks the binder matching a modkit dialect name
func BinderFor(dialect string) (repokit.Binder[Repo], error) {
	switch dialect {
	case modkit.DialectPostgres:
		return NewPG(), nil
	case modkit.DialectSQLite:
		return NewSQLite(), nil
	default:
		return nil, fmt.Errorf("settings: unsupported dialect %q", dialect)
	}
}

func (r *queries) Ensure(ctx context.Context) error {
	_, err := r.q.Exec(ctx, r.d.create)
	return err
}

func (r *queries) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := store.Scalar[string](ctx, r.q, r.d.get, key)
	if errors.Is(err, store.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *queries) Put(ctx context.Context, key, value string) error {
	_, err := r.q.Exec(ctx, r.d.put, key, value)
	return err
}
