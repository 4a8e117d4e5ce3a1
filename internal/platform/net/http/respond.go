// Package http is the transport layer: a router seam over chi, a server with
// graceful shutdown, and the response writers every handler goes through
//
// Successful calls write their value as a bare JSON body. Failures write an
// Envelope whose status comes from the error's perr code.
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "adperf/internal/platform/errors"
	pnet "adperf/internal/platform/net"
)

// Envelope is the body of every failed request
// Detail repeats Error for clients that read the FastAPI field name
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Detail     string         `json:"detail,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
}

// NewEnvelope classifies err, r may be nil when no request is at hand
func NewEnvelope(r *stdhttp.Request, err error) Envelope {
	status := perr.HTTPStatus(err)
	w := perr.WireFrom(err)
	env := Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		Code:       w.Code,
		Error:      w.Message,
		Detail:     w.Message,
		Field:      w.Field,
	}
	if r != nil {
		env.RequestID = pnet.RequestID(r.Context())
	}
	return env
}

// WriteJSON encodes v with status
func WriteJSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the envelope for err
func WriteError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	env := NewEnvelope(r, err)
	WriteJSON(w, env.StatusCode, env)
}

// Response is what return-style handlers produce
// a Body holding an error is written as its envelope and Status is ignored
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

func OK(v any) Response        { return Response{Status: stdhttp.StatusOK, Body: v} }
func NoContent() Response      { return Response{Status: stdhttp.StatusNoContent} }
func Error(err error) Response { return Response{Body: err} }

// Handle turns a return-style handler into a Handler
func Handle(fn func(*stdhttp.Request) Response) Handler {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		fn(r).WriteTo(w, r)
	}
}

// WriteTo writes the response
func (resp Response) WriteTo(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	h := w.Header()
	for k, vs := range resp.Header {
		h[k] = append(h[k], vs...)
	}
	if err, ok := resp.Body.(error); ok && err != nil {
		WriteError(w, r, err)
		return
	}
	switch resp.Status {
	case stdhttp.StatusNoContent:
		w.WriteHeader(stdhttp.StatusNoContent)
	case 0:
		WriteJSON(w, stdhttp.StatusOK, resp.Body)
	default:
		WriteJSON(w, resp.Status, resp.Body)
	}
}
