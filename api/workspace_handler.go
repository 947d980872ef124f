package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/promptdeck/promptdeck-backend/errs"
	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/services"
)

type workspaceHandler struct {
	responder  Responder
	logger     zerolog.Logger
	workspaces *services.WorkspaceService
}

func newWorkspaceHandler(workspaces *services.WorkspaceService) workspaceHandler {
	logger := log.With().Str("handlerName", "workspaceHandler").Logger()

	return workspaceHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		workspaces: workspaces,
	}
}

type createWorkspaceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type addMemberRequest struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
}

// getWorkspaces lists the caller's workspaces
// @Summary List workspaces
// @Tags Workspaces
// @Produce json
// @Success 200 {array} models.Workspace "Workspaces the caller belongs to"
// @Router /api/workspaces [get]
func (h workspaceHandler) getWorkspaces() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		workspaces, err := h.workspaces.ListUserWorkspaces(r.Context(), userID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"workspaces": workspaces,
			"total":      len(workspaces),
		})
	}
}

// createWorkspace creates a shared workspace owned by the caller
// @Summary Create workspace
// @Tags Workspaces
// @Accept json
// @Produce json
// @Success 201 {object} models.Workspace "Created workspace"
// @Failure 400 {object} ErrorResponse "Bad Request"
// @Router /api/workspace [post]
func (h workspaceHandler) createWorkspace() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var req createWorkspaceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode create workspace request body")
			h.responder.WriteError(w, errs.Malformed("workspace"))
			return
		}

		workspace, err := h.workspaces.CreateShared(r.Context(), userID, req.Name, req.Description)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteStatusJSON(w, http.StatusCreated, workspace)
	}
}

// getWorkspacePrompts lists a workspace's prompts
// @Summary List workspace prompts
// @Tags Workspaces
// @Produce json
// @Param workspaceID path int true "Workspace ID"
// @Success 200 {array} services.WorkspacePrompt "Prompts with version label and tag count"
// @Router /api/workspace/{workspaceID}/prompts [get]
func (h workspaceHandler) getWorkspacePrompts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workspaceID, ok := h.workspaceIDParam(w, r)
		if !ok {
			return
		}

		prompts, err := h.workspaces.ListWorkspacePrompts(r.Context(), workspaceID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"workspaceId": workspaceID,
			"prompts":     prompts,
			"total":       len(prompts),
		})
	}
}

// getWorkspaceMembers lists a workspace's members
// @Summary List workspace members
// @Tags Workspaces
// @Produce json
// @Param workspaceID path int true "Workspace ID"
// @Success 200 {array} models.WorkspaceMember "Membership rows"
// @Router /api/workspace/{workspaceID}/members [get]
func (h workspaceHandler) getWorkspaceMembers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workspaceID, ok := h.workspaceIDParam(w, r)
		if !ok {
			return
		}

		members, err := h.workspaces.ListMembers(r.Context(), workspaceID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"workspaceId": workspaceID,
			"members":     members,
			"total":       len(members),
		})
	}
}

// addWorkspaceMember adds a user to a workspace
// @Summary Add workspace member
// @Tags Workspaces
// @Accept json
// @Produce json
// @Param workspaceID path int true "Workspace ID"
// @Success 201 {object} map[string]interface{} "Membership confirmation"
// @Failure 400 {object} ErrorResponse "Bad Request"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /api/workspace/{workspaceID}/member [post]
func (h workspaceHandler) addWorkspaceMember() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workspaceID, ok := h.workspaceIDParam(w, r)
		if !ok {
			return
		}

		var req addMemberRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode add member request body")
			h.responder.WriteError(w, errs.Malformed("member"))
			return
		}
		if req.Role == "" {
			req.Role = models.WorkspaceRoleMember
		}

		if err := h.workspaces.AddMember(r.Context(), workspaceID, req.UserID, req.Role); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteStatusJSON(w, http.StatusCreated, map[string]interface{}{
			"workspaceId": workspaceID,
			"userId":      req.UserID,
			"role":        req.Role,
		})
	}
}

// removeWorkspaceMember removes a user from a workspace
// @Summary Remove workspace member
// @Tags Workspaces
// @Produce json
// @Param workspaceID path int true "Workspace ID"
// @Param userID path int true "User ID"
// @Success 200 {object} map[string]interface{} "Removal confirmation"
// @Router /api/workspace/{workspaceID}/member/{userID} [delete]
func (h workspaceHandler) removeWorkspaceMember() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workspaceID, ok := h.workspaceIDParam(w, r)
		if !ok {
			return
		}

		userIDStr := chi.URLParam(r, "userID")
		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid userID"))
			return
		}

		if err := h.workspaces.RemoveMember(r.Context(), workspaceID, userID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"workspaceId": workspaceID,
			"userId":      userID,
			"status":      "removed",
		})
	}
}

func (h workspaceHandler) workspaceIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	workspaceIDStr := chi.URLParam(r, "workspaceID")
	if workspaceIDStr == "" {
		h.responder.WriteError(w, errs.NewBadRequestError("missing workspaceID"))
		return 0, false
	}

	workspaceID, err := strconv.ParseInt(workspaceIDStr, 10, 64)
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid workspaceID"))
		return 0, false
	}
	return workspaceID, true
}
