package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"

	"adperf/internal/platform/config"
)

// SpecMutator edits the served document in place
type SpecMutator func(doc map[string]any)

var mutators []SpecMutator

// Register queues m to run on every doc.json request, nil is ignored
func Register(m SpecMutator) {
	if m != nil {
		mutators = append(mutators, m)
	}
}

// docJSON serves the document docReader yields after the shared fixups and the
// registered mutators ran on it
func docJSON(w http.ResponseWriter, _ *http.Request) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(docReader()), &doc); err != nil {
		http.Error(w, "spec parse error", http.StatusInternalServerError)
		return
	}
	normalizeVersion(doc)
	if _, ok := doc["servers"]; !ok {
		doc["servers"] = []any{map[string]any{"url": "/api"}}
	}

	suffix := config.New().Prefix("CORE_API_").MayString("DOCS_TITLE_SUFFIX", "")
	if info, ok := doc["info"].(map[string]any); ok && suffix != "" {
		if t, ok := info["title"].(string); ok {
			info["title"] = t + " " + suffix
		}
	}

	schemas := child(child(doc, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; !ok {
		schemas["ErrorResponse"] = envelopeSchema()
	}
	eachOperation(doc, func(o map[string]any) {
		resps := child(o, "responses")
		setDefault(resps, "500", errorExample("Internal Server Error", 500, 1, "panic recovered"))
		if _, body := o["requestBody"]; body {
			setDefault(resps, "400", errorExample("Bad Request", 400, 9, "invalid JSON: unexpected EOF"))
		}
	})

	for _, m := range mutators {
		m(doc)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_ = json.NewEncoder(w).Encode(doc)
}

// normalizeVersion pins the document to OpenAPI 3.0.3, the bundled UI
// renders neither swagger 2 nor 3.1 correctly
func normalizeVersion(doc map[string]any) {
	delete(doc, "swagger")
	if v, _ := doc["openapi"].(string); v == "" || strings.HasPrefix(v, "3.1") {
		doc["openapi"] = "3.0.3"
	}
}

// child returns m[key] as an object, creating it when missing
func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}

func setDefault(m map[string]any, key string, v any) {
	if _, ok := m[key]; !ok {
		m[key] = v
	}
}

func eachOperation(doc map[string]any, fn func(map[string]any)) {
	paths, _ := doc["paths"].(map[string]any)
	for _, p := range paths {
		item, _ := p.(map[string]any)
		for _, o := range item {
			if op, ok := o.(map[string]any); ok {
				fn(op)
			}
		}
	}
}

// envelopeSchema mirrors the failure body the transport writes
func envelopeSchema() map[string]any {
	i32 := map[string]any{"type": "integer", "format": "int32"}
	props := map[string]any{"status_code": i32, "code": i32}
	for _, k := range []string{"status", "error", "detail", "field", "request_id"} {
		props[k] = str()
	}
	return map[string]any{
		"type":        "object",
		"description": "Error envelope written for every failed request",
		"properties":  props,
		"required":    []any{"status_code", "status"},
	}
}

func errorExample(status string, statusCode, code int, msg string) map[string]any {
	return map[string]any{
		"description": status,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": map[string]any{
					"status_code": statusCode,
					"status":      status,
					"code":        code,
					"error":       msg,
					"detail":      msg,
				},
			},
		},
	}
}

func str() map[string]any { return map[string]any{"type": "string"} }
