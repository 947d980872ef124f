package api

import (
	"github.com/promptdeck/promptdeck-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(prompts *services.PromptService, workspaces *services.WorkspaceService) *routeHandlers {
	return &routeHandlers{
		promptHandler:    newPromptHandler(prompts),
		workspaceHandler: newWorkspaceHandler(workspaces),
		dashboardHandler: newDashboardHandler(prompts),
	}
}
