package scan

import "github.com/go-chi/chi/v5"

// Register mounts the scan endpoints at the root of r.
func (h *Handler) Register(r chi.Router) {
	r.Post("/upload", h.UploadHandler)
	r.Get("/result", h.ResultHandler)
	r.Post("/search", h.SearchHandler)
}
