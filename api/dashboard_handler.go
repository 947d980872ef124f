package api

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/promptdeck/promptdeck-backend/errs"
	"github.com/promptdeck/promptdeck-backend/services"
)

type dashboardHandler struct {
	responder Responder
	logger    zerolog.Logger
	prompts   *services.PromptService
}

func newDashboardHandler(prompts *services.PromptService) dashboardHandler {
	logger := log.With().Str("handlerName", "dashboardHandler").Logger()

	return dashboardHandler{
		responder: NewResponder(logger),
		logger:    logger,
		prompts:   prompts,
	}
}

type category struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Color string `json:"color"`
}

type quickTemplate struct {
	ID          string   `json:"id"`
	Icon        string   `json:"icon"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Template    string   `json:"promptTemplate"`
	Variables   []string `json:"variables"`
}

// getCategories returns the static category catalog
// @Summary List categories
// @Tags Dashboard
// @Produce json
// @Success 200 {array} category "Available prompt categories"
// @Router /api/categories [get]
func (h dashboardHandler) getCategories() http.HandlerFunc {
	categories := []category{
		{Value: "marketing", Label: "Marketing copy", Color: "bg-chart-1"},
		{Value: "customer-service", Label: "Customer service", Color: "bg-chart-2"},
		{Value: "product", Label: "Product descriptions", Color: "bg-chart-3"},
		{Value: "code", Label: "Code comments", Color: "bg-chart-4"},
		{Value: "creative", Label: "Creative writing", Color: "bg-chart-5"},
		{Value: "analysis", Label: "Data analysis", Color: "bg-green-500"},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, map[string]interface{}{
			"categories": categories,
		})
	}
}

// getQuickTemplates returns the static quick-template catalog
// @Summary List quick templates
// @Tags Dashboard
// @Produce json
// @Success 200 {array} quickTemplate "Quick-start prompt templates"
// @Router /api/templates/quick [get]
func (h dashboardHandler) getQuickTemplates() http.HandlerFunc {
	templates := []quickTemplate{
		{
			ID:          "tpl_001",
			Icon:        "message-circle",
			Title:       "Conversation assistant",
			Description: "Customer support and chat bots",
			Category:    "conversation",
			Template:    "You are a professional support assistant...",
			Variables:   []string{"user_question"},
		},
		{
			ID:          "tpl_002",
			Icon:        "file-text",
			Title:       "Content writing",
			Description: "Articles, blogs and marketing copy",
			Category:    "content",
			Template:    "Write an article about {{topic}}...",
			Variables:   []string{"topic", "word_count"},
		},
		{
			ID:          "tpl_003",
			Icon:        "code",
			Title:       "Code assistant",
			Description: "Code generation and documentation",
			Category:    "code",
			Template:    "Write code for the following task...",
			Variables:   []string{"language", "task_description"},
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, map[string]interface{}{
			"templates": templates,
		})
	}
}

// getRecentPrompts returns the caller's most recently updated prompts
// @Summary List recent prompts
// @Tags Dashboard
// @Produce json
// @Param limit query int false "Maximum rows to return" default(4)
// @Success 200 {array} models.Prompt "Recently updated prompts"
// @Router /api/prompts/recent [get]
func (h dashboardHandler) getRecentPrompts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		prompts, err := h.prompts.ListRecent(r.Context(), userID, limit)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"prompts": prompts,
			"total":   len(prompts),
		})
	}
}
