package trips

import "github.com/go-chi/chi/v5"

// MountRoutes registers trip routes on the provided router. Patterns are
// registered flat so the payment-request routes can share the /{id} prefix.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/{id}", h.Detail)
	r.Post("/{id}/confirm", h.Confirm)
	r.Post("/{id}/assign-vehicle", h.AssignVehicle)
	r.Post("/{id}/accept", h.Accept)
	r.Post("/{id}/loading-proof", h.LoadingProof)
}
