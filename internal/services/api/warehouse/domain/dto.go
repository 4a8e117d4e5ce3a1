// Package domain holds DTOs and ports for the warehouse analytics endpoints
package domain

import "time"

// P1Marker is the substring an ad name must contain in priority mode
const P1Marker = "P1"

// PerformanceQuery is the query string of the performance endpoints
// start_date and end_date are honored only when p1_only is false and both are present
type PerformanceQuery struct {
	EmployeeAcronym string     `query:"employee_acronym" validate:"required,min=1" example:"HM"`
	P1Only          bool       `query:"p1_only" default:"true" example:"true"`
	StartDate       *time.Time `query:"start_date" example:"2024-01-01"`
	EndDate         *time.Time `query:"end_date" example:"2024-01-31"`
}

// Filter returns the mode part of the query
func (q PerformanceQuery) Filter() KeyFilter {
	return KeyFilter{P1Only: q.P1Only, Start: q.StartDate, End: q.EndDate}
}

// KeyFilter selects priority mode, date-range mode or no extra filter
type KeyFilter struct {
	P1Only     bool
	Start, End *time.Time
}

// DateRange reports the bounds to filter on, ok is false outside date-range mode
func (f KeyFilter) DateRange() (start, end time.Time, ok bool) {
	if f.P1Only || f.Start == nil || f.End == nil {
		return time.Time{}, time.Time{}, false
	}
	return *f.Start, *f.End, true
}

// AggregateRow is one (ad_name, adset_name) group
// Croas is nil when the group's spend sums to zero
type AggregateRow struct {
	AdName    string   `json:"ad_name" example:"MP1"`
	AdsetName string   `json:"adset_name" example:"SC_HM_US"`
	Spend     float64  `json:"spend" example:"100"`
	Croas     *float64 `json:"croas" example:"2.5"`
}

// SummaryResult reduces every matching group to one row
// BlendedCroas is nil when total spend is zero
type SummaryResult struct {
	TotalSpend   float64  `json:"total_spend" example:"100"`
	BlendedCroas *float64 `json:"blended_croas" example:"2.5"`
	RowCount     int64    `json:"row_count" example:"1"`
}

// SampleRow is one raw warehouse row with JSON-safe values
type SampleRow = map[string]any
