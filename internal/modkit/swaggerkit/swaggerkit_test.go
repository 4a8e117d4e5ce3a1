package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "adperf/internal/platform/net/http"
	"adperf/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func fetchSpec(t *testing.T) map[string]any {
	t.Helper()
	r := phttp.AdaptChi(chi.NewRouter())
	Mount(r, true)
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var spec map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &spec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return spec
}

func responsesOf(t *testing.T, spec map[string]any, path, method string) map[string]any {
	t.Helper()
	node, ok := spec["paths"].(map[string]any)[path].(map[string]any)
	if !ok {
		t.Fatalf("path %s missing", path)
	}
	op, ok := node[method].(map[string]any)
	if !ok {
		t.Fatalf("%s %s missing", method, path)
	}
	return op["responses"].(map[string]any)
}

// annotated is the shape swag emits for one GET with a 422 and one PUT with a body
const annotated = `{
  "openapi": "3.1.0",
  "info": {"title": "Ad Performance Tracker API", "version": "0.1.0"},
  "paths": {
    "/bigquery/performance": {"get": {"responses": {
      "200": {"description": "ok"},
      "422": {"description": "bad query parameter"}
    }}},
    "/settings": {"put": {
      "requestBody": {"content": {"application/json": {"schema": {"type": "object"}}}},
      "responses": {"200": {"description": "ok"}}
    }}
  }
}`

func TestDocJSON_Fixups(t *testing.T) {
	testkit.Swap(t, &docReader, func() string { return annotated })

	spec := fetchSpec(t)
	if spec["openapi"] != "3.0.3" {
		t.Fatalf("openapi %v", spec["openapi"])
	}
	servers := spec["servers"].([]any)
	if servers[0].(map[string]any)["url"] != "/api" {
		t.Fatalf("servers %v", servers)
	}

	perf := responsesOf(t, spec, "/bigquery/performance", "get")
	for _, code := range []string{"200", "422", "500"} {
		if _, ok := perf[code]; !ok {
			t.Fatalf("performance lacks %s", code)
		}
	}
	if _, ok := perf["400"]; ok {
		t.Fatalf("GET without body must not get a default 400")
	}
	if _, ok := responsesOf(t, spec, "/settings", "put")["400"]; !ok {
		t.Fatalf("PUT /settings lacks 400")
	}

	schemas := spec["components"].(map[string]any)["schemas"].(map[string]any)
	if _, ok := schemas["ErrorResponse"]; !ok {
		t.Fatalf("ErrorResponse schema missing")
	}
}

func TestDocJSON_Skeleton(t *testing.T) {
	spec := fetchSpec(t)
	if spec["openapi"] != "3.0.3" {
		t.Fatalf("openapi %v", spec["openapi"])
	}
	if _, ok := spec["paths"].(map[string]any); !ok {
		t.Fatalf("paths missing: %v", spec)
	}
}

func TestDocJSON_InvalidSource(t *testing.T) {
	testkit.Swap(t, &docReader, func() string { return "{not json" })

	r := phttp.AdaptChi(chi.NewRouter())
	Mount(r, true)
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestMutatorsAndTitleSuffix(t *testing.T) {
	saved := mutators
	t.Cleanup(func() { mutators = saved })
	t.Setenv("CORE_API_DOCS_TITLE_SUFFIX", "(staging)")

	Register(func(spec map[string]any) { spec["x-adperf"] = true })
	Register(nil)

	spec := fetchSpec(t)
	if spec["x-adperf"] != true {
		t.Fatalf("mutator not applied")
	}
	title := spec["info"].(map[string]any)["title"].(string)
	testkit.MustContain(t, title, "(staging)")
}

func TestDocJSON_LiftsSwagger2(t *testing.T) {
	testkit.Swap(t, &docReader, func() string { return `{"swagger":"2.0","paths":{}}` })
	spec := fetchSpec(t)
	if spec["openapi"] != "3.0.3" || spec["swagger"] != nil {
		t.Fatalf("swagger 2 must be lifted: %v", spec)
	}
}

func TestMount_Disabled(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	Mount(r, false)
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d", rec.Code)
	}
}
