// Package domain holds the settings document and its ports
package domain

import "context"

// Key is the single row the application document lives under
const Key = "app"

// Document is the client-owned settings object, stored verbatim
type Document = map[string]any

// ServicePort is consumed by handlers
type ServicePort interface {
	Read(ctx context.Context) (Document, error)
	Write(ctx context.Context, doc Document) (Document, error)
}

// DefaultDocument is served until the first write
// a fresh value is built on every call so callers may mutate it
func DefaultDocument() Document {
	employee := func(acronym string) map[string]any {
		return map[string]any{
			"acronym":    acronym,
			"name":       "Employee " + acronym,
			"status":     "tenured",
			"startDate":  nil,
			"reviewDate": nil,
		}
	}
	band := func(lo float64, hi any, color string) map[string]any {
		return map[string]any{"min": lo, "max": hi, "color": color}
	}
	return Document{
		"employees": []any{employee("HM"), employee("ABC"), employee("XYZ")},
		"spendEvaluationKey": []any{
			band(20000, nil, "green"),
			band(10000, float64(20000), "yellow"),
			band(0, float64(10000), "red"),
		},
		"croasEvaluationKey": []any{
			band(3, nil, "green"),
			band(1, float64(3), "yellow"),
			band(0, float64(1), "red"),
		},
		"periods": []any{"P1"},
	}
}
