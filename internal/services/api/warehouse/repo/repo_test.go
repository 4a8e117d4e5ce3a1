package repo

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"adperf/internal/platform/store"

	"github.com/shopspring/decimal"
)

type fakeRows struct {
	cols  []string
	data  [][]any
	types []string
	i     int
}

func (r *fakeRows) Next() bool        { r.i++; return r.i <= len(r.data) }
func (r *fakeRows) Err() error        { return nil }
func (r *fakeRows) Close()            {}
func (r *fakeRows) Columns() []string { return r.cols }

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.i-1]
	if len(dest) != len(row) {
		return fmt.Errorf("scan: %d dest for %d cols", len(dest), len(row))
	}
	for i, d := range dest {
		dv := reflect.ValueOf(d).Elem()
		if row[i] == nil {
			dv.Set(reflect.Zero(dv.Type()))
			continue
		}
		dv.Set(reflect.ValueOf(row[i]))
	}
	return nil
}

// typedRows reports server types so dates can be told apart from timestamps
type typedRows struct{ fakeRows }

func (r *typedRows) ScanTypes() []reflect.Type { return nil }
func (r *typedRows) DatabaseTypes() []string   { return r.types }

type fakeCH struct {
	rows store.Rows
	err  error
	ctx  context.Context
	sql  string
	args []any
}

func (f *fakeCH) Query(ctx context.Context, sql string, args ...any) (store.Rows, error) {
	f.ctx, f.sql, f.args = ctx, sql, args
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}
func (f *fakeCH) Ping(context.Context) error { return nil }
func (f *fakeCH) Close() error               { return nil }

func newRepo(t *testing.T, db store.Clickhouse) *CH {
	t.Helper()
	r, err := NewCH(db, Location{Database: "ads", Table: "facebook_ads"}, DefaultColumns())
	if err != nil {
		t.Fatalf("NewCH: %v", err)
	}
	return r
}

func ptr(f float64) *float64 { return &f }

func TestNewCH_Validation(t *testing.T) {
	if _, err := NewCH(nil, Location{Database: "d", Table: "t"}, DefaultColumns()); err == nil {
		t.Fatalf("nil connection must fail")
	}
	if _, err := NewCH(&fakeCH{}, Location{Database: "d"}, DefaultColumns()); err == nil {
		t.Fatalf("missing table must fail")
	}
}

func TestRows_Mapping(t *testing.T) {
	db := &fakeCH{rows: &fakeRows{
		cols: []string{"ad_name", "adset_name", "spend", "croas"},
		data: [][]any{
			{"MP1", "SC_HM_US", decimal.RequireFromString("100"), ptr(2.5)},
			{"MP1 copy", "SC_HM_CA", float64(0), (*float64)(nil)},
		},
	}}
	got, err := newRepo(t, db).Rows(context.Background(), Filter{Pattern: "p", PriorityOnly: true})
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("rows %+v", got)
	}
	if got[0].AdName != "MP1" || got[0].AdsetName != "SC_HM_US" || got[0].Spend != 100 || got[0].Croas == nil || *got[0].Croas != 2.5 {
		t.Fatalf("row 0 %+v", got[0])
	}
	if got[1].Croas != nil || got[1].Spend != 0 {
		t.Fatalf("zero spend must give nil croas: %+v", got[1])
	}
	// values travel as server side parameters, never as driver args
	if len(db.args) != 0 || db.ctx == context.Background() || !strings.Contains(db.sql, "{acronym_regex:String}") {
		t.Fatalf("params not bound: args=%v sql=%s", db.args, db.sql)
	}
}

func TestRows_EmptyIsNonNil(t *testing.T) {
	db := &fakeCH{rows: &fakeRows{cols: []string{"ad_name", "adset_name", "spend", "croas"}}}
	got, err := newRepo(t, db).Rows(context.Background(), Filter{Pattern: "p"})
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("got %#v err %v", got, err)
	}
}

func TestRows_QueryError(t *testing.T) {
	boom := errors.New("code: 60, table does not exist")
	_, err := newRepo(t, &fakeCH{err: boom}).Rows(context.Background(), Filter{})
	if !errors.Is(err, boom) {
		t.Fatalf("err %v", err)
	}
}

func TestSummary_Mapping(t *testing.T) {
	db := &fakeCH{rows: &fakeRows{
		cols: []string{"total_spend", "blended_croas", "row_count"},
		data: [][]any{{float64(100), ptr(2.5), uint64(1)}},
	}}
	got, err := newRepo(t, db).Summary(context.Background(), Filter{Pattern: "p"})
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if got.TotalSpend != 100 || got.BlendedCroas == nil || *got.BlendedCroas != 2.5 || got.RowCount != 1 {
		t.Fatalf("summary %+v", got)
	}
}

func TestSummary_NothingMatched(t *testing.T) {
	db := &fakeCH{rows: &fakeRows{
		cols: []string{"total_spend", "blended_croas", "row_count"},
		data: [][]any{{float64(0), nil, uint64(0)}},
	}}
	got, err := newRepo(t, db).Summary(context.Background(), Filter{Pattern: "p"})
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if got.TotalSpend != 0 || got.BlendedCroas != nil || got.RowCount != 0 {
		t.Fatalf("summary %+v", got)
	}
}

func TestSample_NormalizesAndTagsDates(t *testing.T) {
	day := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	ts := time.Date(2024, 1, 5, 10, 30, 0, 0, time.UTC)
	db := &fakeCH{rows: &typedRows{fakeRows{
		cols:  []string{"ad_name", "date", "loaded_at", "spend_sum"},
		types: []string{"String", "Nullable(Date)", "DateTime", "Decimal(18, 2)"},
		data:  [][]any{{"MP1", day, ts, decimal.RequireFromString("12.50")}},
	}}}
	got, err := newRepo(t, db).Sample(context.Background())
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if db.sql != "SELECT * FROM `ads`.`facebook_ads` LIMIT 5" {
		t.Fatalf("sql %q", db.sql)
	}
	want := map[string]any{
		"ad_name":   "MP1",
		"date":      "2024-01-05",
		"loaded_at": "2024-01-05T10:30:00Z",
		"spend_sum": 12.5,
	}
	if len(got) != 1 || !reflect.DeepEqual(got[0], want) {
		t.Fatalf("sample %#v", got)
	}
}

func TestIsDateType(t *testing.T) {
	for typ, want := range map[string]bool{
		"Date": true, "Date32": true, "Nullable(Date)": true,
		"DateTime": false, "DateTime64(3)": false, "String": false,
	} {
		if isDateType(typ) != want {
			t.Fatalf("isDateType(%q) != %v", typ, want)
		}
	}
}
