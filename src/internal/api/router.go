package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates a new HTTP router with all API endpoints.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(Recovery)
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(LocalhostOnly)
	r.Use(CORS)
	r.Use(JSONContentType)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", h.GetStatus)
		r.Post("/refresh", h.GetStatus)

		r.Get("/routers", h.GetRouters)
		r.Post("/routers", h.SaveRouter)
		r.Delete("/routers/{name}", h.DeleteRouter)

		r.Route("/clients/{mac}", func(r chi.Router) {
			r.Post("/policy", h.SetClientPolicy)
			r.Post("/default", h.SetClientDefault)
			r.Post("/block", h.BlockClient)
		})
		r.Post("/choices/{id}", h.ApplyChoice)

		r.Get("/dns", h.GetDNSServers)
		r.Get("/health", h.CheckHealth)
	})

	return r
}
