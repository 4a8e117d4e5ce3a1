// Package normalize converts values scanned from warehouse rows into JSON-safe values
//
// The conversion is pure and idempotent: Value(Value(x)) deep-equals Value(x).
// Times become ISO-8601 strings, exact numerics become float64, bytes become
// hex, identifier types become their string form, and containers are walked
// recursively up to MaxDepth.
package normalize

import (
	"encoding/hex"
	"fmt"
	"math"
	"math/big"
	"net"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxDepth bounds recursion, deeper subtrees are rendered with fmt.Sprint
const MaxDepth = 32

// DateLayout is the calendar date form used for Date values
const DateLayout = "2006-01-02"

// Date is a calendar date without a clock, scanned from Date and Date32 columns
type Date struct{ time.Time }

// String renders the date as YYYY-MM-DD
func (d Date) String() string { return d.Format(DateLayout) }

// MarshalJSON renders the date as a quoted YYYY-MM-DD
func (d Date) MarshalJSON() ([]byte, error) { return []byte(`"` + d.String() + `"`), nil }

var stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()

// Value returns the JSON-safe form of v
func Value(v any) any { return value(v, 0) }

// Row normalizes every column of a row, column names are kept
func Row(row map[string]any) map[string]any {
	if row == nil {
		return nil
	}
	out := make(map[string]any, len(row))
	for k, v := range row {
		out[k] = Value(v)
	}
	return out
}

// Rows normalizes a result set; the result is never nil so it encodes as []
func Rows(rows []map[string]any) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, Row(r))
	}
	return out
}

func value(v any, depth int) any {
	if v == nil {
		return nil
	}
	if depth > MaxDepth {
		return fmt.Sprint(v)
	}

	// common leaves first, no reflection
	switch x := v.(type) {
	case string, bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return x
	case float64:
		return finite(x)
	case float32:
		return finite(float64(x))
	case Date:
		return x.String()
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case decimal.Decimal:
		f, _ := x.Float64()
		return finite(f)
	case *big.Int:
		if x == nil {
			return nil
		}
		f, _ := new(big.Float).SetInt(x).Float64()
		return finite(f)
	case *big.Float:
		if x == nil {
			return nil
		}
		f, _ := x.Float64()
		return finite(f)
	case []byte:
		if x == nil {
			return nil
		}
		return hex.EncodeToString(x)
	case uuid.UUID:
		return x.String()
	case net.IP:
		if x == nil {
			return nil
		}
		return x.String()
	case map[string]any:
		if x == nil {
			return nil
		}
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = value(e, depth+1)
		}
		return out
	case []any:
		if x == nil {
			return nil
		}
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = value(e, depth+1)
		}
		return out
	}

	return reflected(reflect.ValueOf(v), depth)
}

func reflected(rv reflect.Value, depth int) any {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		// pointer receiver Stringers lose String once dereferenced
		if rv.Kind() == reflect.Pointer && rv.Type().Implements(stringerType) && !rv.Elem().Type().Implements(stringerType) {
			return rv.Interface().(fmt.Stringer).String()
		}
		return value(rv.Elem().Interface(), depth+1)

	case reflect.Map:
		if rv.IsNil() {
			return nil
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[mapKey(iter.Key())] = value(iter.Value().Interface(), depth+1)
		}
		return out

	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 && !rv.Type().Implements(stringerType) {
			b := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(b), rv)
			return hex.EncodeToString(b)
		}
		if rv.Type().Implements(stringerType) {
			return rv.Interface().(fmt.Stringer).String()
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = value(rv.Index(i).Interface(), depth+1)
		}
		return out
	}

	if rv.Type().Implements(stringerType) {
		return rv.Interface().(fmt.Stringer).String()
	}

	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		return finite(rv.Float())
	default:
		return fmt.Sprint(rv.Interface())
	}
}

// mapKey renders a map key as a JSON object key
func mapKey(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	if k.Type().Implements(stringerType) {
		return k.Interface().(fmt.Stringer).String()
	}
	return fmt.Sprint(k.Interface())
}

// finite maps NaN and infinities to nil, JSON has no spelling for them
func finite(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}
