package domain

import (
	"strings"

	"adperf/internal/core/acronym"
)

const keyDateLayout = "2006-01-02"

// Key returns the cache key of a performance request
// acronym case and surrounding whitespace do not change the key, any filter difference does
func Key(employeeAcronym string, f KeyFilter) string {
	var b strings.Builder
	b.WriteString(acronym.Normalize(employeeAcronym))
	b.WriteByte('|')
	start, end, ranged := f.DateRange()
	switch {
	case f.P1Only:
		b.WriteString("p1")
	case ranged:
		b.WriteString("range:")
		b.WriteString(start.Format(keyDateLayout))
		b.WriteByte(':')
		b.WriteString(end.Format(keyDateLayout))
	default:
		b.WriteString("all")
	}
	return b.String()
}
