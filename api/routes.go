package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires every endpoint behind the auth middleware
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		// Prompt endpoints
		r.Post("/api/prompt", handlers.promptHandler.createPrompt())
		r.Get("/api/prompt/{promptID}", handlers.promptHandler.getPrompt())
		r.Put("/api/prompt/{promptID}", handlers.promptHandler.updatePrompt())
		r.Delete("/api/prompt/{promptID}", handlers.promptHandler.deletePrompt())
		r.Get("/api/prompt/{promptID}/versions", handlers.promptHandler.getPromptVersions())

		// Workspace endpoints
		r.Get("/api/workspaces", handlers.workspaceHandler.getWorkspaces())
		r.Post("/api/workspace", handlers.workspaceHandler.createWorkspace())
		r.Get("/api/workspace/{workspaceID}/prompts", handlers.workspaceHandler.getWorkspacePrompts())
		r.Get("/api/workspace/{workspaceID}/members", handlers.workspaceHandler.getWorkspaceMembers())
		r.Post("/api/workspace/{workspaceID}/member", handlers.workspaceHandler.addWorkspaceMember())
		r.Delete("/api/workspace/{workspaceID}/member/{userID}", handlers.workspaceHandler.removeWorkspaceMember())

		// Dashboard endpoints
		r.Get("/api/categories", handlers.dashboardHandler.getCategories())
		r.Get("/api/templates/quick", handlers.dashboardHandler.getQuickTemplates())
		r.Get("/api/prompts/recent", handlers.dashboardHandler.getRecentPrompts())
	})
}
