package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/maksimkurb/keen-tray/src/internal/config"
	"github.com/maksimkurb/keen-tray/src/internal/service"
)

// GetRouters returns the configured routers.
// GET /api/v1/routers
func (h *Handler) GetRouters(w http.ResponseWriter, r *http.Request) {
	routers := h.config().Routers
	if routers == nil {
		routers = []config.RouterConfig{}
	}
	writeJSONData(w, RoutersResponse{Routers: routers})
}

// SaveRouter adds a router or, with original_name, edits one. The router is
// contacted without holding the configuration lock.
// POST /api/v1/routers
func (h *Handler) SaveRouter(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteInvalidRequest(w, "Invalid request body: "+err.Error())
		return
	}

	router, err := h.registrationService().Verify(r.Context(), h.config(), req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	updated := h.cfg.Clone()
	if err := h.registration.Save(updated, req, router); err != nil {
		WriteServiceError(w, err)
		return
	}
	h.cfg = updated
	writeCreated(w, router)
}

// DeleteRouter removes a router and its stored password.
// DELETE /api/v1/routers/{name}
func (h *Handler) DeleteRouter(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.cfg.FindRouter(name); !ok {
		WriteNotFound(w, "Router '"+name+"'")
		return
	}

	updated := h.cfg.Clone()
	if err := h.registration.Remove(updated, name); err != nil {
		WriteServiceError(w, err)
		return
	}
	h.cfg = updated
	writeNoContent(w)
}
