package bind

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"

	perr "adperf/internal/platform/errors"
)

// JSONOptions controls ParseJSON
type JSONOptions struct {
	// MaxBytes caps the body, 0 means unlimited
	MaxBytes int64
	// DisallowUnknown rejects keys T does not declare
	DisallowUnknown bool
}

// DefaultJSONOptions caps bodies at 1 MiB and rejects unknown keys
var DefaultJSONOptions = JSONOptions{MaxBytes: 1 << 20, DisallowUnknown: true}

// ParseJSON decodes exactly one JSON value from the body into T and validates it
//
// An empty body is an error except on GET, which yields the zero T. Struct
// targets are validated through their validate tags; maps and other shapes are
// only decoded. Decode failures are ErrorCodeJSON, tag failures ErrorCodeValidation.
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var zero, dst T
	o := DefaultJSONOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	if r.Body == nil {
		r.Body = http.NoBody
	}
	defer r.Body.Close()

	var body io.Reader = r.Body
	if o.MaxBytes > 0 {
		body = http.MaxBytesReader(nil, r.Body, o.MaxBytes)
	}
	br := bufio.NewReader(body)
	if _, err := br.Peek(1); errors.Is(err, io.EOF) {
		if r.Method == http.MethodGet {
			return zero, nil
		}
		return zero, perr.JSONErrf("empty body")
	}

	structured := isStruct(reflect.TypeFor[T]())
	dec := json.NewDecoder(br)
	if !structured {
		dec.UseNumber()
	}
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&dst); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return zero, perr.JSONErrf("body exceeds %d bytes", tooBig.Limit)
		}
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return zero, perr.JSONErrf("unexpected trailing data")
	}

	if !structured {
		return dst, nil
	}
	if err := check(dst, perr.ErrorCodeValidation); err != nil {
		return zero, err
	}
	return dst, nil
}

func isStruct(t reflect.Type) bool {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t != nil && t.Kind() == reflect.Struct
}
