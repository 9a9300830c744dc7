package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/maksimkurb/keen-tray/src/internal/service"
	"github.com/maksimkurb/keen-tray/src/internal/utils"
)

// SetClientPolicy assigns a policy to a client of the active router.
// POST /api/v1/clients/{mac}/policy
func (h *Handler) SetClientPolicy(w http.ResponseWriter, r *http.Request) {
	var req SetPolicyRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteInvalidRequest(w, "Invalid request body: "+err.Error())
		return
	}

	action := service.ActionDefault()
	if req.Policy != nil {
		action = service.ActionSetPolicy(*req.Policy)
	}
	h.apply(w, r, clientMAC(r), action)
}

// SetClientDefault restores the default policy of a client.
// POST /api/v1/clients/{mac}/default
func (h *Handler) SetClientDefault(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, clientMAC(r), service.ActionDefault())
}

// BlockClient denies a client network access.
// POST /api/v1/clients/{mac}/block
func (h *Handler) BlockClient(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, clientMAC(r), service.ActionBlock())
}

// ApplyChoice applies a policy menu entry.
// POST /api/v1/choices/{id}
func (h *Handler) ApplyChoice(w http.ResponseWriter, r *http.Request) {
	mac, action, err := service.ParseChoiceID(chi.URLParam(r, "id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	h.apply(w, r, mac, action)
}

func (h *Handler) apply(w http.ResponseWriter, r *http.Request, mac string, action service.PolicyAction) {
	snapshot, err := h.state.Apply(r.Context(), h.config(), mac, action)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	writeJSONData(w, snapshot)
}

// clientMAC accepts the MAC with or without colons.
func clientMAC(r *http.Request) string {
	return utils.NormalizeMAC(utils.DecodeMAC(chi.URLParam(r, "mac")))
}
