package api

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/maksimkurb/keen-tray/src/internal/config"
	"github.com/maksimkurb/keen-tray/src/internal/domain"
	"github.com/maksimkurb/keen-tray/src/internal/log"
	"github.com/maksimkurb/keen-tray/src/internal/service"
)

// Handler manages all API endpoints and dependencies.
type Handler struct {
	state *service.StateService

	mu           sync.RWMutex // guards the fields below
	cfg          *config.Config
	registration *service.RouterRegistration
	dns          *service.DNSService
}

// NewHandler creates a new API handler serving cfg.
func NewHandler(cfg *config.Config, deps *domain.AppDependencies, state *service.StateService) *Handler {
	return &Handler{
		state:        state,
		cfg:          cfg,
		registration: service.NewRouterRegistration(deps),
		dns:          service.NewDNSService(deps),
	}
}

// Reload replaces the served configuration and the dependencies built from
// its general settings, e.g. after the file changed on disk. Pending
// overrides survive the reload.
func (h *Handler) Reload(cfg *config.Config, deps *domain.AppDependencies) {
	h.state.SetDependencies(deps)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.cfg = cfg
	h.registration = service.NewRouterRegistration(deps)
	h.dns = service.NewDNSService(deps)
}

// config returns the current configuration. Callers must not modify it.
func (h *Handler) config() *config.Config {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cfg
}

func (h *Handler) registrationService() *service.RouterRegistration {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.registration
}

func (h *Handler) dnsService() *service.DNSService {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dns
}

// writeJSON writes a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(DataResponse{Data: data}); err != nil {
		log.Warnf("Failed to write response: %v", err)
	}
}

// writeJSONData writes a successful JSON response with data.
func writeJSONData(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, data)
}

// writeCreated writes a 201 Created response with data.
func writeCreated(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusCreated, data)
}

// writeNoContent writes a 204 No Content response.
func writeNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// decodeJSON decodes JSON from the request body.
func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
