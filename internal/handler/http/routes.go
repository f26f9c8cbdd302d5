package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		middleware.RealIP,
		h.withTraceID,
		h.withLogging,
		middleware.Recoverer,
		withSecurityHeaders,
		middleware.Compress(5, "application/json"),
	)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Get("/api/version", h.getServerVersion)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/auth/logout", h.logout)
		r.Get("/api/auth/verify", h.verify)
		r.Post("/api/auth/change-password", h.changePassword)

		r.Get("/api/vault/items", h.listItems)
		r.Post("/api/vault/items", h.createItem)
		r.Get("/api/vault/items/{id}", h.getItem)
		r.Put("/api/vault/items/{id}", h.updateItem)
		r.Delete("/api/vault/items/{id}", h.deleteItem)
		r.Get("/api/vault/items/{id}/history", h.listHistory)
		r.Post("/api/vault/generate-password", h.generatePassword)
		r.Get("/api/vault/categories", h.listCategories)
		r.Post("/api/vault/categories", h.createCategory)

		r.Get("/api/settings", h.getSettings)
		r.Put("/api/settings", h.updateSettings)
		r.Get("/api/settings/sessions", h.listSessions)
		r.Delete("/api/settings/sessions/{id}", h.revokeSession)
		r.Get("/api/settings/audit-log", h.auditLog)
		r.Get("/api/settings/stats", h.stats)
		r.Delete("/api/settings/account", h.deleteAccount)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
