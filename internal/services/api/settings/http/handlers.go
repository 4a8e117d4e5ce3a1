// Package http provides http transport for settings
package http

import (
	stdhttp "net/http"

	"adperf/internal/modkit/httpkit"
	"adperf/internal/services/api/settings/domain"
)

// Register mounts the settings endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/", h.read)
	httpkit.PutJSON[domain.Document](r, "/", h.write)
}

type handlers struct{ svc domain.ServicePort }

// @Summary Read application settings
// @Tags Settings
// @Produce json
// @Success 200 {object} map[string]any "stored document, or the defaults before the first save"
// @Failure 500 {object} httpkit.Envelope "storage failure"
// @Router /settings [get]
func (h *handlers) read(r *stdhttp.Request) (any, error) {
	return h.svc.Read(r.Context())
}

// @Summary Replace application settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param payload body map[string]any true "Settings document"
// @Success 200 {object} map[string]any "the stored document"
// @Failure 400 {object} httpkit.Envelope "body is not a JSON object"
// @Failure 500 {object} httpkit.Envelope "storage failure"
// @Router /settings [put]
func (h *handlers) write(r *stdhttp.Request, doc domain.Document) (any, error) {
	return h.svc.Write(r.Context(), doc)
}
