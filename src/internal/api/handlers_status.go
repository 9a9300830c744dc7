package api

import (
	"net/http"
)

// GetStatus selects the active router and returns the rendered snapshot.
// GET /api/v1/status, POST /api/v1/refresh
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.state.Refresh(r.Context(), h.config())
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	writeJSONData(w, snapshot)
}

// CheckHealth reports that the server is running.
// GET /api/v1/health
func (h *Handler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	cfg := h.config()
	writeJSONData(w, HealthResponse{
		Healthy:     true,
		ConfigPath:  cfg.Path(),
		RouterCount: len(cfg.Routers),
	})
}
