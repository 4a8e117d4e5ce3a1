package modkit

import (
	"context"
	"testing"

	"adperf/internal/platform/config"
	"adperf/internal/platform/store"
)

type fakeTx struct{ store.TxRunner }

func TestDeps_Relational(t *testing.T) {
	t.Parallel()

	pg, lite := fakeTx{}, &fakeTx{}

	cases := []struct {
		name    string
		deps    Deps
		dialect string
	}{
		{"none", Deps{}, ""},
		{"sqlite", Deps{Lite: lite}, DialectSQLite},
		{"postgres wins", Deps{PG: pg, Lite: lite}, DialectPostgres},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, dialect := tc.deps.Relational()
			if dialect != tc.dialect {
				t.Fatalf("dialect = %q want %q", dialect, tc.dialect)
			}
			if (db == nil) != (tc.dialect == "") {
				t.Fatalf("db = %v for dialect %q", db, dialect)
			}
		})
	}
}

func TestDepsFrom(t *testing.T) {
	t.Parallel()

	st, err := store.Open(context.Background(), store.Config{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	d := DepsFrom(st, config.New(), st.Log)
	if d.Store != st || d.CH != nil || d.PG != nil || d.Lite != nil {
		t.Fatalf("unexpected deps %+v", d)
	}

	if d := DepsFrom(nil, config.New(), st.Log); d.Store != nil {
		t.Fatalf("nil store should stay nil")
	}
}
