// Package acronym matches employee acronyms inside delimited ad set names
//
// An acronym matches when it is bounded on both sides by a non-letter or the
// string edge, so "HM" finds "SC_HM_US" but not "CHEMO". Digits count as
// boundaries. Matching is ASCII case insensitive.
package acronym

import (
	"regexp"
	"strings"
)

const (
	leftBoundary  = `(^|[^a-zA-Z])`
	rightBoundary = `([^a-zA-Z]|$)`
)

// Normalize trims and lowercases an acronym, the form used for patterns and cache keys
func Normalize(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Pattern returns the RE2 pattern the warehouse matches against the lowercased ad set name
// the acronym is escaped so regex metacharacters match literally
func Pattern(acronym string) string {
	return leftBoundary + regexp.QuoteMeta(Normalize(acronym)) + rightBoundary
}
