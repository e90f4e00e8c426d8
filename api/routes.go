package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes registers every API route. Required-auth routes sit behind
// authenticate, the rest behind optional.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Get("/health", handlers.healthHandler.health())

	chatRoutes := func(r chi.Router) {
		r.Post("/", handlers.chatHandler.sendConversation())
		r.Post("/message", handlers.chatHandler.sendMessage())
		r.Post("/conversation", handlers.chatHandler.sendConversation())
		r.Get("/contexts", handlers.chatHandler.getContexts())
		r.Post("/extract", handlers.chatHandler.extractDraft())
	}
	r.Route("/api/chat", chatRoutes)
	r.Route("/chat", chatRoutes)

	r.Route("/api/projects", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)
			r.Post("/", handlers.projectHandler.createProject())
			r.Get("/", handlers.projectHandler.getUserProjects())
			r.Put("/{id}", handlers.projectHandler.updateProject())
			r.Delete("/{id}", handlers.projectHandler.deleteProject())
		})
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.optional)
			r.Get("/search", handlers.projectHandler.searchProjects())
			r.Get("/{id}", handlers.projectHandler.getProject())
		})
	})

	r.Route("/api/community/projects", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)
			r.Post("/{id}/vote", handlers.communityHandler.voteProject())
			r.Post("/{id}/comments", handlers.communityHandler.addComment())
		})
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.optional)
			r.Get("/", handlers.communityHandler.getPublicProjects())
			r.Get("/{id}", handlers.communityHandler.getProjectDetails())
			r.Get("/{id}/comments", handlers.communityHandler.getProjectComments())
		})
	})
}
