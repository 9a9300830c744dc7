package api

import (
	"net/http"

	kerrors "github.com/maksimkurb/keen-tray/src/internal/errors"
	"github.com/maksimkurb/keen-tray/src/internal/service"
)

// DNSServersResponse lists the upstream DNS servers of the active router.
type DNSServersResponse struct {
	Router  string                  `json:"router"`
	Servers []service.DNSServerInfo `json:"servers"`
}

// GetDNSServers returns the upstream DNS servers of the active router.
// GET /api/v1/dns
func (h *Handler) GetDNSServers(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.state.Refresh(r.Context(), h.config())
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	if snapshot.State == nil {
		WriteServiceError(w, kerrors.NewNoActiveRouterError("no reachable router"))
		return
	}

	servers, err := h.dnsService().GetDNSServers(r.Context(), snapshot.State.Target())
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	writeJSONData(w, DNSServersResponse{Router: snapshot.State.Router.Name, Servers: servers})
}
