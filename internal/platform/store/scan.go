package store

import (
	"context"
	"reflect"
)

// Scalar reads the first column of the first row into T
// no match is ErrNoRows on every relational backend
func Scalar[T any](ctx context.Context, q RowQuerier, sql string, args ...any) (T, error) {
	var v T
	err := q.QueryRow(ctx, sql, args...).Scan(&v)
	return v, err
}

// ScanValues scans the current row into one fresh value per column
// result sets that report scan types get typed destinations, the rest *any
func ScanValues(rows Rows) ([]any, error) {
	dst := destinations(rows)
	if err := rows.Scan(dst...); err != nil {
		return nil, err
	}
	out := make([]any, len(dst))
	for i, d := range dst {
		out[i] = reflect.ValueOf(d).Elem().Interface()
	}
	return out, nil
}

// DatabaseTypes returns the server type name of each column, nil when rows cannot tell
func DatabaseTypes(rows Rows) []string {
	if ct, ok := rows.(ColumnTyper); ok {
		return ct.DatabaseTypes()
	}
	return nil
}

func destinations(rows Rows) []any {
	n := len(rows.Columns())
	dst := make([]any, n)
	var types []reflect.Type
	if ct, ok := rows.(ColumnTyper); ok {
		types = ct.ScanTypes()
	}
	for i := range dst {
		if len(types) == n {
			dst[i] = reflect.New(types[i]).Interface()
		} else {
			dst[i] = new(any)
		}
	}
	return dst
}
