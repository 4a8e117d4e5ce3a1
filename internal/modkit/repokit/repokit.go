// Package repokit binds domain repos to the relational seam of the store
package repokit

import (
	"context"

	"adperf/internal/platform/store"
)

type (
	// Queryer is the read and write surface a bound repo runs on
	Queryer = store.RowQuerier
	// TxRunner opens transactions
	TxRunner = store.TxRunner
)

// Binder binds a domain repo to a Queryer, usually the open transaction
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a plain function to Binder
type BindFunc[T any] func(Queryer) T

// Bind calls f
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// InTx binds a repo to a fresh transaction and runs fn on it
// the transaction commits when fn returns nil and rolls back otherwise
func InTx[T any](ctx context.Context, db TxRunner, b Binder[T], fn func(T) error) error {
	if db == nil || b == nil {
		panic("repokit: InTx needs a TxRunner and a Binder")
	}
	return db.Tx(ctx, func(q Queryer) error { return fn(b.Bind(q)) })
}
