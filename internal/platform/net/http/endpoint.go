package http

import (
	"net/http"

	"adperf/internal/platform/net/http/bind"
)

// Binder reads a handler's input from the request
type Binder[T any] func(*http.Request) (T, error)

// Endpoint binds T then calls fn; a bind failure is written without calling fn
// fn may return a Response to control status and headers itself
func Endpoint[T any](in Binder[T], fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		v, err := in(r)
		if err != nil {
			return Error(err)
		}
		out, err := fn(r, v)
		if err != nil {
			return Error(err)
		}
		if resp, ok := out.(Response); ok {
			return resp
		}
		return OK(out)
	})
}

// NoInput binds nothing
func NoInput(*http.Request) (struct{}, error) { return struct{}{}, nil }

// Get registers a GET handler that only needs the request
func Get(r Router, path string, fn func(*http.Request) (any, error)) {
	r.Get(path, Endpoint(NoInput, func(req *http.Request, _ struct{}) (any, error) { return fn(req) }))
}

// GetQuery registers a GET handler whose input is bound and validated from the query string
func GetQuery[T any](r Router, path string, fn func(*http.Request, T) (any, error)) {
	r.Get(path, Endpoint(bind.ParseQuery[T], fn))
}

// PutJSON registers a PUT handler whose input is decoded from the JSON body
func PutJSON[T any](r Router, path string, fn func(*http.Request, T) (any, error)) {
	body := func(req *http.Request) (T, error) { return bind.ParseJSON[T](req) }
	r.Put(path, Endpoint(body, fn))
}
