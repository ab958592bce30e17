package payments

import "github.com/go-chi/chi/v5"

// MountRoutes registers routes addressed by payment request id.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/{id}/mark-paid", h.MarkPaid)
}

// MountTripRoutes registers routes scoped to a trip.
func (h *Handler) MountTripRoutes(r chi.Router) {
	r.Post("/{id}/payment-requests", h.Create)
	r.Get("/{id}/payment-requests", h.ListForTrip)
}
