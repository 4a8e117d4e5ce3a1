package middleware

import (
	stdhttp "net/http"
	"runtime/debug"

	perr "adperf/internal/platform/errors"
	"adperf/internal/platform/logger"
	pnet "adperf/internal/platform/net"
	phttp "adperf/internal/platform/net/http"
)

// RecoverJSON turns a handler panic into the standard 500 envelope
// http.ErrAbortHandler is re-raised so the server can drop the connection
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			v := recover()
			switch v {
			case nil:
				return
			case stdhttp.ErrAbortHandler:
				panic(v)
			}

			rid := pnet.RequestID(r.Context())
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			if rid != "" {
				w.Header().Set("X-Request-ID", rid)
			}
			phttp.WriteError(w, r, perr.PanicErrf("internal server error"))
		}()
		next.ServeHTTP(w, r)
	})
}
