package repo

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// SampleLimit caps the raw sample
const SampleLimit = 5

// server side parameter names, referenced as {name:Type} in the generated sql
const (
	paramPattern = "acronym_regex"
	paramMarker  = "p1_marker"
	paramStart   = "start_date"
	paramEnd     = "end_date"
)

const paramDateLayout = "2006-01-02"

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Columns names the warehouse columns the analytics queries read
type Columns struct {
	AdName    string
	AdsetName string
	Spend     string
	Revenue   string
	Date      string
}

// DefaultColumns matches the ad platform export schema
func DefaultColumns() Columns {
	return Columns{
		AdName:    "ad_name",
		AdsetName: "adset_name",
		Spend:     "spend_sum",
		Revenue:   "placed_order_total_revenue_sum_direct_session",
		Date:      "date",
	}
}

// Location is the database and table holding the ad rows
type Location struct {
	Database string
	Table    string
}

// Filter narrows the rows an aggregate reads
// Start and End apply only outside priority mode and only when both are set
type Filter struct {
	Pattern      string
	PriorityOnly bool
	Marker       string
	Start, End   *time.Time
}

// Query is SQL text plus the parameters the server substitutes into it
type Query struct {
	SQL    string
	Params map[string]string
}

// Builder renders the analytics queries for one table
// identifiers are validated once, request values are always bound
type Builder struct {
	from string
	cols Columns
}

// NewBuilder validates every identifier and returns a Builder
func NewBuilder(loc Location, cols Columns) (*Builder, error) {
	idents := []struct{ what, v string }{
		{"database", loc.Database},
		{"table", loc.Table},
		{"ad name column", cols.AdName},
		{"ad set name column", cols.AdsetName},
		{"spend column", cols.Spend},
		{"revenue column", cols.Revenue},
		{"date column", cols.Date},
	}
	for _, id := range idents {
		if !identRe.MatchString(id.v) {
			return nil, fmt.Errorf("warehouse: invalid %s identifier %q", id.what, id.v)
		}
	}
	return &Builder{from: quote(loc.Database) + "." + quote(loc.Table), cols: cols}, nil
}

func quote(ident string) string { return "`" + ident + "`" }

// Rows groups matching rows by ad and ad set, biggest spend first
func (b *Builder) Rows(f Filter) Query {
	where, params := b.where(f)
	return Query{SQL: b.grouped(where, false), Params: params}
}

// Summary reduces the grouped rows to a single row, also when nothing matches
func (b *Builder) Summary(f Filter) Query {
	where, params := b.where(f)
	var sb strings.Builder
	sb.WriteString("SELECT\n")
	sb.WriteString("  sum(spend) AS total_spend,\n")
	sb.WriteString("  sum(revenue) / nullIf(sum(spend), 0) AS blended_croas,\n")
	sb.WriteString("  count() AS row_count\n")
	sb.WriteString("FROM (\n")
	sb.WriteString(b.grouped(where, true))
	sb.WriteString(")")
	return Query{SQL: sb.String(), Params: params}
}

// Sample reads a handful of raw rows
func (b *Builder) Sample() Query {
	return Query{SQL: fmt.Sprintf("SELECT * FROM %s LIMIT %d", b.from, SampleLimit)}
}

func (b *Builder) grouped(where string, withRevenue bool) string {
	ad, adset := quote(b.cols.AdName), quote(b.cols.AdsetName)
	spend, revenue := quote(b.cols.Spend), quote(b.cols.Revenue)

	var sb strings.Builder
	sb.WriteString("SELECT\n")
	fmt.Fprintf(&sb, "  %s AS ad_name,\n", ad)
	fmt.Fprintf(&sb, "  %s AS adset_name,\n", adset)
	fmt.Fprintf(&sb, "  sum(%s) AS spend,\n", spend)
	if withRevenue {
		fmt.Fprintf(&sb, "  sum(%s) AS revenue,\n", revenue)
	}
	fmt.Fprintf(&sb, "  sum(%s) / nullIf(sum(%s), 0) AS croas\n", revenue, spend)
	fmt.Fprintf(&sb, "FROM %s\n", b.from)
	fmt.Fprintf(&sb, "WHERE %s\n", where)
	fmt.Fprintf(&sb, "GROUP BY %s, %s\n", ad, adset)
	if !withRevenue {
		sb.WriteString("ORDER BY spend DESC\n")
	}
	return sb.String()
}

func (b *Builder) where(f Filter) (string, map[string]string) {
	conds := []string{fmt.Sprintf("match(lower(%s), {%s:String})", quote(b.cols.AdsetName), paramPattern)}
	params := map[string]string{paramPattern: f.Pattern}

	switch {
	case f.PriorityOnly:
		marker := f.Marker
		if marker == "" {
			marker = "P1"
		}
		conds = append(conds, fmt.Sprintf("positionCaseInsensitive(%s, {%s:String}) > 0", quote(b.cols.AdName), paramMarker))
		params[paramMarker] = marker
	case f.Start != nil && f.End != nil:
		conds = append(conds, fmt.Sprintf("toDate(%s) BETWEEN {%s:Date} AND {%s:Date}", quote(b.cols.Date), paramStart, paramEnd))
		params[paramStart] = f.Start.Format(paramDateLayout)
		params[paramEnd] = f.End.Format(paramDateLayout)
	}
	return strings.Join(conds, "\n  AND "), params
}
