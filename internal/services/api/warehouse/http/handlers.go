// Package http provides http transport for the warehouse analytics endpoints
package http

import (
	stdhttp "net/http"

	"adperf/internal/modkit/httpkit"
	"adperf/internal/services/api/warehouse/domain"
)

// Register mounts the analytics endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	// raw rows, to eyeball the table schema
	httpkit.Get(r, "/sample", h.sample)

	// per ad and ad set
	httpkit.GetQuery[domain.PerformanceQuery](r, "/performance", h.performance)

	// one row for the whole employee
	httpkit.GetQuery[domain.PerformanceQuery](r, "/performance/summary", h.summary)
}

type handlers struct{ svc domain.ServicePort }

// @Summary Sample warehouse rows
// @Tags Warehouse
// @Produce json
// @Success 200 {array} object "up to 5 raw rows"
// @Failure 502 {object} httpkit.Envelope "warehouse request failed"
// @Failure 503 {object} httpkit.Envelope "warehouse not configured"
// @Router /bigquery/sample [get]
func (h *handlers) sample(r *stdhttp.Request) (any, error) {
	return h.svc.Sample(r.Context())
}

// @Summary Spend and cROAS per ad for an employee
// @Tags Warehouse
// @Produce json
// @Param employee_acronym query string true "Employee acronym"
// @Param p1_only query bool false "Only ads whose name contains P1" default(true)
// @Param start_date query string false "Inclusive start, YYYY-MM-DD, honored when p1_only=false"
// @Param end_date query string false "Inclusive end, YYYY-MM-DD, honored when p1_only=false"
// @Success 200 {array} domain.AggregateRow "ok"
// @Failure 422 {object} httpkit.Envelope "bad query parameter"
// @Failure 502 {object} httpkit.Envelope "warehouse request failed"
// @Failure 503 {object} httpkit.Envelope "warehouse not configured"
// @Router /bigquery/performance [get]
func (h *handlers) performance(r *stdhttp.Request, q domain.PerformanceQuery) (any, error) {
	return h.svc.Performance(r.Context(), q)
}

// @Summary Total spend and blended cROAS for an employee
// @Tags Warehouse
// @Produce json
// @Param employee_acronym query string true "Employee acronym"
// @Param p1_only query bool false "Only ads whose name contains P1" default(true)
// @Param start_date query string false "Inclusive start, YYYY-MM-DD"
// @Param end_date query string false "Inclusive end, YYYY-MM-DD"
// @Success 200 {object} domain.SummaryResult "ok"
// @Failure 422 {object} httpkit.Envelope "bad query parameter"
// @Failure 502 {object} httpkit.Envelope "warehouse request failed"
// @Failure 503 {object} httpkit.Envelope "warehouse not configured"
// @Router /bigquery/performance/summary [get]
func (h *handlers) summary(r *stdhttp.Request, q domain.PerformanceQuery) (any, error) {
	return h.svc.Summary(r.Context(), q)
}
