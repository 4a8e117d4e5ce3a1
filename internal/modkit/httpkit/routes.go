package httpkit

import "net/http"

// MountUnder mounts a subrouter at prefix and applies per-scope middlewares
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(prefix, func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	})
}

// MountEverywhere registers the same routes at the root and under every alias prefix
// so /bigquery/sample and /api/bigquery/sample reach one handler
func MountEverywhere(r Router, aliases []string, mount func(Router)) {
	r.Group(mount)
	for _, p := range aliases {
		MountUnder(r, p, nil, mount)
	}
}
