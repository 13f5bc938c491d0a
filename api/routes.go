package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the public surface, the login route, and the
// token-guarded admin surface.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// Public surface read by the marketing site
		r.Get("/health", handlers.healthHandler.liveness())
		r.Get("/clients", handlers.clientHandler.listClients())
		r.Get("/clients/{slug}", handlers.clientHandler.getClientBySlug())

		r.Post("/auth/login", handlers.authHandler.login())

		// Admin surface
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Post("/clients", handlers.clientHandler.createClient())
			r.Patch("/clients/{clientID}", handlers.clientHandler.updateClient())
			r.Delete("/clients/{clientID}", handlers.clientHandler.deleteClient())

			r.Post("/uploads", handlers.uploadHandler.uploadAssets())
			r.Get("/storage/list", handlers.storageHandler.listObjects())
		})
	})
}
