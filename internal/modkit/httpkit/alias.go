// Package httpkit is the handler surface modules build on
// modules import it instead of internal/platform/net/http
package httpkit

import (
	"net/http"

	phttp "adperf/internal/platform/net/http"
)

type (
	Envelope = phttp.Envelope
	Response = phttp.Response
	Handler  = phttp.Handler
	Router   = phttp.Router
)

// Get registers a handler that reads nothing but the request
// returning a Response lets the handler set status and headers
func Get(r Router, path string, h func(*http.Request) (any, error)) { phttp.Get(r, path, h) }

// GetQuery registers a GET handler whose input T is bound and validated from the query string
func GetQuery[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.GetQuery(r, path, h)
}

// PutJSON registers a PUT handler whose input T is decoded from the JSON body
func PutJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.PutJSON(r, path, h)
}
