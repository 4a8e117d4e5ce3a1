// Package swaggerkit serves the OpenAPI document and the Swagger UI under /api/docs
package swaggerkit

import (
	"net/http"

	phttp "adperf/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

const docsRoot = "/api/docs"

// Mount adds the docs routes when enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	ui := httpSwagger.Handler(
		httpSwagger.InstanceName("adperf"),
		httpSwagger.URL(docsRoot+"/doc.json"),
	)
	r.Get(docsRoot, http.RedirectHandler(docsRoot+"/", http.StatusPermanentRedirect).ServeHTTP)
	r.Get(docsRoot+"/doc.json", docJSON)
	r.Handle(docsRoot+"/*", ui)
}
