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
	router.Use(h.auth)

	router.Get("/", h.index)
	router.Handle("/css/*", staticHandler())
	router.Handle("/js/*", staticHandler())
	router.Handle("/images/*", staticHandler())

	// login pages and reset flow, reachable without a token
	router.Route("/auth", func(r chi.Router) {
		r.Get("/login", h.getLogin)
		r.Post("/login", h.postLogin)
		r.Get("/register", h.getRegister)
		r.Post("/register", h.postRegister)
		r.Post("/logout", h.postLogout)
		r.Get("/forgot", h.getForgot)
		r.Post("/forgot", h.postForgot)
		r.Get("/reset/{token}", h.getReset)
		r.Post("/reset/{token}", h.postReset)
	})

	// JSON API mirrors of register and login
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.apiRegister)
		r.Post("/api/user/login", h.apiLogin)
	})

	// everything below requires an authenticated principal
	router.Group(func(r chi.Router) {
		r.Use(h.requirePrincipal)

		r.Get("/dashboard", h.dashboard)
		r.Get("/api/user/me", h.apiMe)
	})

	return router
}
