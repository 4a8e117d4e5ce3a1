// Package repo reads ad performance aggregates from the clickhouse warehouse
package repo

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"adperf/internal/core/normalize"
	"adperf/internal/platform/store"
	"adperf/internal/platform/store/ch"
)

// Repo is the warehouse read surface
type Repo interface {
	Sample(ctx context.Context) ([]map[string]any, error)
	Rows(ctx context.Context, f Filter) ([]Row, error)
	Summary(ctx context.Context, f Filter) (Summary, error)
}

// Row is one grouped result, Croas is nil for zero spend
type Row struct {
	AdName    string
	AdsetName string
	Spend     float64
	Croas     *float64
}

// Summary is the single reduced row
type Summary struct {
	TotalSpend   float64
	BlendedCroas *float64
	RowCount     int64
}

// CH implements Repo over the store.Clickhouse seam
type CH struct {
	db store.Clickhouse
	qb *Builder
}

// NewCH binds a warehouse connection to a table
func NewCH(db store.Clickhouse, loc Location, cols Columns) (*CH, error) {
	if db == nil {
		return nil, fmt.Errorf("warehouse: nil clickhouse connection")
	}
	qb, err := NewBuilder(loc, cols)
	if err != nil {
		return nil, err
	}
	return &CH{db: db, qb: qb}, nil
}

// Sample returns up to SampleLimit raw rows with JSON-safe values
func (r *CH) Sample(ctx context.Context) ([]map[string]any, error) {
	q := r.qb.Sample()
	rows, err := r.db.Query(ch.WithParameters(ctx, q.Params), q.SQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []map[string]any{}
	for rows.Next() {
		rec, err := record(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, normalize.Row(rec))
	}
	return out, rows.Err()
}

// Rows runs the grouped aggregate
func (r *CH) Rows(ctx context.Context, f Filter) ([]Row, error) {
	q := r.qb.Rows(f)
	rows, err := r.db.Query(ch.WithParameters(ctx, q.Params), q.SQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Row{}
	for rows.Next() {
		rec, err := record(rows)
		if err != nil {
			return nil, err
		}
		rec = normalize.Row(rec)
		out = append(out, Row{
			AdName:    asString(rec["ad_name"]),
			AdsetName: asString(rec["adset_name"]),
			Spend:     orZero(asFloat(rec["spend"])),
			Croas:     asFloat(rec["croas"]),
		})
	}
	return out, rows.Err()
}

// Summary runs the reduced aggregate, a missing row reads as zero spend
func (r *CH) Summary(ctx context.Context, f Filter) (Summary, error) {
	q := r.qb.Summary(f)
	rows, err := r.db.Query(ch.WithParameters(ctx, q.Params), q.SQL)
	if err != nil {
		return Summary{}, err
	}
	defer rows.Close()

	var s Summary
	if rows.Next() {
		rec, err := record(rows)
		if err != nil {
			return Summary{}, err
		}
		rec = normalize.Row(rec)
		s.TotalSpend = orZero(asFloat(rec["total_spend"]))
		s.BlendedCroas = asFloat(rec["blended_croas"])
		s.RowCount = int64(orZero(asFloat(rec["row_count"])))
	}
	return s, rows.Err()
}

// record scans the current row keyed by column name
// Date and Date32 columns are tagged so they render without a clock
func record(rows store.Rows) (map[string]any, error) {
	vals, err := store.ScanValues(rows)
	if err != nil {
		return nil, err
	}
	cols := rows.Columns()
	types := store.DatabaseTypes(rows)
	rec := make(map[string]any, len(cols))
	for i, c := range cols {
		v := vals[i]
		if i < len(types) && isDateType(types[i]) {
			v = asDate(v)
		}
		rec[c] = v
	}
	return rec, nil
}

func isDateType(t string) bool {
	t = strings.TrimSuffix(strings.TrimPrefix(t, "Nullable("), ")")
	return t == "Date" || t == "Date32"
}

func asDate(v any) any {
	switch t := v.(type) {
	case time.Time:
		return normalize.Date{Time: t}
	case *time.Time:
		if t == nil {
			return nil
		}
		return normalize.Date{Time: *t}
	}
	return v
}

// asFloat reads a normalized numeric value, nil stays nil
func asFloat(v any) *float64 {
	var f float64
	switch n := v.(type) {
	case nil:
		return nil
	case float64:
		f = n
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case string:
		p, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return nil
		}
		f = p
	default:
		return nil
	}
	return &f
}

func orZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}
