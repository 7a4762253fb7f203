package rest

import (
	"net/http"

	"github.com/bibbank/agriscore/internal/application/usecase"
)

// HealthHandler serves liveness and readiness checks over HTTP.
type HealthHandler struct {
	models  *usecase.ModelManager
	service string
}

// NewHealthHandler creates a health check HTTP handler. Readiness requires an
// installed credit model.
func NewHealthHandler(models *usecase.ModelManager, service string) *HealthHandler {
	return &HealthHandler{models: models, service: service}
}

// RegisterRoutes attaches health-check routes to the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.liveness)
	mux.HandleFunc("GET /readyz", h.readiness)
}

func (h *HealthHandler) liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": h.service,
	})
}

func (h *HealthHandler) readiness(w http.ResponseWriter, _ *http.Request) {
	if !h.models.Trained() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":  "not ready",
			"service": h.service,
			"reason":  "credit model not trained",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ready",
		"service": h.service,
	})
}
