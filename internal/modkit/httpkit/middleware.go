package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"adperf/internal/platform/metrics"
	"adperf/internal/platform/net/middleware"
)

// StackOptions tune CommonStack
type StackOptions struct {
	// CORSOrigins are the browser origins allowed to call the API
	CORSOrigins []string
	// Timeout bounds each request, 0 disables it
	Timeout time.Duration
	// SlowRequest marks access log lines as slow at or above this duration
	SlowRequest time.Duration
	// Metrics records per route request counters and latencies
	Metrics bool
}

// CommonStack returns the baseline middleware slice for the root router
// it must wrap the root mux, inline groups skip middleware on 404 and 405 so CORS preflights would fail
func CommonStack(opts StackOptions) []func(http.Handler) http.Handler {
	stack := []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.RealIP,
		middleware.RecoverJSON,
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: opts.SlowRequest}),
	}
	if opts.Metrics {
		stack = append(stack, metrics.Middleware)
	}
	return append(stack,
		middleware.NoCache,
		middleware.CORS(opts.CORSOrigins...),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes,
		middleware.Timeout(opts.Timeout),
	)
}
