package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/users/login", h.login)
		r.Post("/api/users/register", h.register)
		r.Post("/api/users/verify-email", h.verifyEmail)
		r.Post("/api/users/reset-password", h.resetPassword)
	})

	// back-office routes behind JWT authentication
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/users/logout", h.logout)

		r.Get("/api/users", h.listUsers)
		r.Post("/api/users", h.createUser)
		r.Get("/api/users/{id}", h.getUser)
		r.Put("/api/users/{id}", h.updateUser)
		r.Delete("/api/users/{id}", h.deleteUser)
		r.Get("/api/users/check/{username}", h.checkUsername)

		r.Get("/api/statistics/visitors", h.visitorStatistics)
	})

	return router
}
