package history

import (
	"net/http"

	"github.com/EmpoweredVote/DoseRight/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) SetupRoutes() http.Handler {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.ListHandler)
	})

	return r
}
