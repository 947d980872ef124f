package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/promptdeck/promptdeck-backend/errs"
	"github.com/promptdeck/promptdeck-backend/services"
)

type promptHandler struct {
	responder Responder
	logger    zerolog.Logger
	prompts   *services.PromptService
}

func newPromptHandler(prompts *services.PromptService) promptHandler {
	logger := log.With().Str("handlerName", "promptHandler").Logger()

	return promptHandler{
		responder: NewResponder(logger),
		logger:    logger,
		prompts:   prompts,
	}
}

// createPromptRequest is the create payload; the owner comes from the
// authenticated context, never from the body.
type createPromptRequest struct {
	WorkspaceID int64    `json:"workspaceId"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Category    string   `json:"category"`
	Description *string  `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// createPrompt creates a prompt with its initial version
// @Summary Create prompt
// @Description Creates a prompt with its v1.0 current version and optional tags
// @Tags Prompts
// @Accept json
// @Produce json
// @Success 201 {object} services.CreatePromptResult "Created prompt identifiers"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid prompt data"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /api/prompt [post]
func (h promptHandler) createPrompt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var req createPromptRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode create prompt request body")
			h.responder.WriteError(w, errs.Malformed("prompt"))
			return
		}

		result, err := h.prompts.Create(r.Context(), services.CreatePromptInput{
			UserID:      userID,
			WorkspaceID: req.WorkspaceID,
			Title:       req.Title,
			Content:     req.Content,
			Category:    req.Category,
			Description: req.Description,
			Tags:        req.Tags,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteStatusJSON(w, http.StatusCreated, result)
	}
}

// updatePrompt applies an owner-checked update to a prompt
// @Summary Update prompt
// @Description Updates scalar fields, content (in place or as a new version) and tags atomically
// @Tags Prompts
// @Accept json
// @Produce json
// @Param promptID path int true "Prompt ID"
// @Success 200 {object} services.UpdatePromptResult "Update result"
// @Failure 400 {object} ErrorResponse "Bad Request"
// @Failure 403 {object} ErrorResponse "Forbidden - Not the prompt owner"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /api/prompt/{promptID} [put]
func (h promptHandler) updatePrompt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		promptID, ok := h.promptIDParam(w, r)
		if !ok {
			return
		}

		var req services.UpdatePromptInput
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode update prompt request body")
			h.responder.WriteError(w, errs.Malformed("prompt update"))
			return
		}

		result, err := h.prompts.Update(r.Context(), promptID, userID, req)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, result)
	}
}

// getPrompt returns a prompt with its current version and tags
// @Summary Get prompt
// @Description Returns the prompt aggregate: row, current version and tag names
// @Tags Prompts
// @Produce json
// @Param promptID path int true "Prompt ID"
// @Success 200 {object} services.PromptDetail "Prompt detail"
// @Failure 404 {object} ErrorResponse "Not Found - Absent or deleted prompt"
// @Router /api/prompt/{promptID} [get]
func (h promptHandler) getPrompt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		promptID, ok := h.promptIDParam(w, r)
		if !ok {
			return
		}

		detail, err := h.prompts.Get(r.Context(), promptID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, detail)
	}
}

// getPromptVersions returns a prompt's version history
// @Summary List prompt versions
// @Description Returns the prompt's full version history, newest first
// @Tags Prompts
// @Produce json
// @Param promptID path int true "Prompt ID"
// @Success 200 {array} models.PromptVersion "Version history"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /api/prompt/{promptID}/versions [get]
func (h promptHandler) getPromptVersions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		promptID, ok := h.promptIDParam(w, r)
		if !ok {
			return
		}

		versions, err := h.prompts.ListVersions(r.Context(), promptID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"promptId": promptID,
			"versions": versions,
			"total":    len(versions),
		})
	}
}

// deletePrompt soft-deletes a prompt
// @Summary Delete prompt
// @Description Marks the prompt deleted; history rows stay in place
// @Tags Prompts
// @Produce json
// @Param promptID path int true "Prompt ID"
// @Success 200 {object} map[string]interface{} "Deletion confirmation"
// @Failure 403 {object} ErrorResponse "Forbidden - Not the prompt owner"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /api/prompt/{promptID} [delete]
func (h promptHandler) deletePrompt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		promptID, ok := h.promptIDParam(w, r)
		if !ok {
			return
		}

		if err := h.prompts.Delete(r.Context(), promptID, userID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"promptId": promptID,
			"status":   "deleted",
		})
	}
}

func (h promptHandler) promptIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	promptIDStr := chi.URLParam(r, "promptID")
	if promptIDStr == "" {
		h.responder.WriteError(w, errs.NewBadRequestError("missing promptID"))
		return 0, false
	}

	promptID, err := strconv.ParseInt(promptIDStr, 10, 64)
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid promptID"))
		return 0, false
	}
	return promptID, true
}
