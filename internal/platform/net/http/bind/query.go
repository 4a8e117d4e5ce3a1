package bind

import (
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"sync"
	"time"

	perr "adperf/internal/platform/errors"
)

// DefaultDateLayout is used for time.Time fields without a layout tag
const DefaultDateLayout = "2006-01-02"

var timeType = reflect.TypeOf(time.Time{})

// queryField describes one bindable struct field
type queryField struct {
	index  int
	name   string
	def    string
	hasDef bool
	layout string
}

var queryPlans sync.Map // reflect.Type -> []queryField

// ParseQuery decodes the URL query of r into T and validates it
//
// Fields opt in with a `query:"name"` tag. A `default:"..."` tag applies when
// the parameter is absent or empty and time.Time fields read `layout:"..."`.
// Pointer fields stay nil when the parameter is absent. Every failure,
// including validation, is an ErrorCodeInvalidArgument carrying the field name.
func ParseQuery[T any](r *http.Request) (T, error) {
	var zero, dst T

	rv := reflect.ValueOf(&dst).Elem()
	if rv.Kind() != reflect.Struct {
		return zero, perr.Internalf("bind: ParseQuery needs a struct, got %s", rv.Kind())
	}

	if err := decodeQuery(rv, r.URL.Query()); err != nil {
		return zero, err
	}

	if err := check(dst, perr.ErrorCodeInvalidArgument); err != nil {
		return zero, err
	}
	return dst, nil
}

func decodeQuery(rv reflect.Value, q url.Values) error {
	for _, f := range planFor(rv.Type()) {
		raw := q.Get(f.name)
		if raw == "" {
			if !f.hasDef {
				continue
			}
			raw = f.def
		}
		if err := setField(rv.Field(f.index), raw, f.layout); err != nil {
			return perr.WithField(perr.InvalidArgf("%s: %v", f.name, err), f.name)
		}
	}
	return nil
}

func planFor(t reflect.Type) []queryField {
	if p, ok := queryPlans.Load(t); ok {
		return p.([]queryField)
	}
	var plan []queryField
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name := sf.Tag.Get("query")
		if name == "" || name == "-" || !sf.IsExported() {
			continue
		}
		def, hasDef := sf.Tag.Lookup("default")
		layout := sf.Tag.Get("layout")
		if layout == "" {
			layout = DefaultDateLayout
		}
		plan = append(plan, queryField{index: i, name: name, def: def, hasDef: hasDef, layout: layout})
	}
	queryPlans.Store(t, plan)
	return plan
}

func setField(fv reflect.Value, raw, layout string) error {
	if fv.Kind() == reflect.Pointer {
		elem := reflect.New(fv.Type().Elem())
		if err := setField(elem.Elem(), raw, layout); err != nil {
			return err
		}
		fv.Set(elem)
		return nil
	}

	if fv.Type() == timeType {
		t, err := time.Parse(layout, raw)
		if err != nil {
			return perr.InvalidArgf("expected a date in %s form, got %q", layout, raw)
		}
		fv.Set(reflect.ValueOf(t))
		return nil
	}

	switch fv.Kind() {
	case reflect.String:
		fv.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return perr.InvalidArgf("expected a boolean, got %q", raw)
		}
		fv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, fv.Type().Bits())
		if err != nil {
			return perr.InvalidArgf("expected an integer, got %q", raw)
		}
		fv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, fv.Type().Bits())
		if err != nil {
			return perr.InvalidArgf("expected an unsigned integer, got %q", raw)
		}
		fv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(raw, fv.Type().Bits())
		if err != nil {
			return perr.InvalidArgf("expected a number, got %q", raw)
		}
		fv.SetFloat(n)
	default:
		return perr.Internalf("unsupported query field kind %s", fv.Kind())
	}
	return nil
}
