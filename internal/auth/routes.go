package auth

import (
	"net/http"

	"github.com/EmpoweredVote/DoseRight/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) SetupRoutes() http.Handler {
	r := chi.NewRouter()

	r.Get("/signup", h.SignupPageHandler)
	r.Get("/login", h.LoginPageHandler)
	r.Get("/logout", h.LogoutHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(h.ratePerMin))
		r.Post("/signup", h.SignupHandler)
		r.Post("/login", h.LoginHandler)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/profile", h.ProfileHandler)
	})

	return r
}
