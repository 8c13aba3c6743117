package pages

import (
	"github.com/EmpoweredVote/DoseRight/internal/medicine"
	"github.com/go-chi/chi/v5"
)

// Register mounts the public pages at the root of r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.IndexHandler)
	r.Get("/about", h.AboutHandler)
	r.Get("/healthz", HealthHandler)
	r.Get(medicine.PlaceholderImageURL, h.PlaceholderHandler)
}
