package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/promptdeck/promptdeck-backend/database"
	"github.com/promptdeck/promptdeck-backend/errs"
	"github.com/promptdeck/promptdeck-backend/models"
)

// WorkspaceService manages workspaces and their memberships. Creating a
// workspace writes the workspace row and its owner membership in one
// transaction.
type WorkspaceService struct {
	pool       *database.Pool
	workspaces *database.WorkspaceRepo
	prompts    *database.PromptRepo
	versions   *database.VersionStore
	tags       *database.TagStore
	logger     zerolog.Logger
}

func NewWorkspaceService(pool *database.Pool, db database.Database) *WorkspaceService {
	logger := log.With().Str("serviceName", "workspaceService").Logger()

	return &WorkspaceService{
		pool:       pool,
		workspaces: db.WorkspaceRepo(),
		prompts:    db.PromptRepo(),
		versions:   db.VersionStore(),
		tags:       db.TagStore(),
		logger:     logger,
	}
}

// CreatePersonal creates the user's personal workspace with the user as
// owner.
func (s *WorkspaceService) CreatePersonal(ctx context.Context, userID int64, username string) (*models.Workspace, error) {
	if strings.TrimSpace(username) == "" {
		return nil, errs.NewValidationError("username", "username is required")
	}
	return s.create(ctx, &models.Workspace{
		Name:        fmt.Sprintf("%s's personal space", username),
		Description: "Personal workspace",
		Type:        models.WorkspaceTypePersonal,
		OwnerID:     userID,
	})
}

// CreateShared creates a collaboration workspace owned by ownerID.
func (s *WorkspaceService) CreateShared(ctx context.Context, ownerID int64, name, description string) (*models.Workspace, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errs.NewValidationError("name", "name is required")
	}
	return s.create(ctx, &models.Workspace{
		Name:        name,
		Description: description,
		Type:        models.WorkspaceTypeShared,
		OwnerID:     ownerID,
	})
}

func (s *WorkspaceService) create(ctx context.Context, workspace *models.Workspace) (*models.Workspace, error) {
	err := s.pool.WithTransaction(ctx, "create workspace", func(tx *gorm.DB) error {
		if err := s.workspaces.Insert(tx, workspace); err != nil {
			return err
		}
		member := &models.WorkspaceMember{
			WorkspaceID: workspace.ID,
			UserID:      workspace.OwnerID,
			Role:        models.WorkspaceRoleOwner,
		}
		return s.workspaces.InsertMember(tx, member)
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("ownerId", workspace.OwnerID).Msg("create workspace failed")
		return nil, s.asServiceError("create", "workspace", err)
	}

	s.logger.Info().
		Int64("workspaceId", workspace.ID).
		Str("type", workspace.Type).
		Msg("workspace created")
	return workspace, nil
}

// AddMember adds a user to a workspace with the given role.
func (s *WorkspaceService) AddMember(ctx context.Context, workspaceID, userID int64, role string) error {
	if role != models.WorkspaceRoleOwner && role != models.WorkspaceRoleMember {
		return errs.NewValidationError("role", "role must be owner or member")
	}

	err := s.pool.WithTransaction(ctx, "add workspace member", func(tx *gorm.DB) error {
		if _, err := s.workspaces.FindByID(tx, workspaceID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewNotFound("workspace")
			}
			return err
		}
		return s.workspaces.InsertMember(tx, &models.WorkspaceMember{
			WorkspaceID: workspaceID,
			UserID:      userID,
			Role:        role,
		})
	})
	if err != nil {
		return s.asServiceError("add member to", "workspace", err)
	}
	return nil
}

// RemoveMember removes a user from a workspace.
func (s *WorkspaceService) RemoveMember(ctx context.Context, workspaceID, userID int64) error {
	err := s.pool.WithTransaction(ctx, "remove workspace member", func(tx *gorm.DB) error {
		return s.workspaces.DeleteMember(tx, workspaceID, userID)
	})
	if err != nil {
		return s.asServiceError("remove member from", "workspace", err)
	}
	return nil
}

// ListUserWorkspaces returns every workspace the user belongs to.
func (s *WorkspaceService) ListUserWorkspaces(ctx context.Context, userID int64) ([]models.Workspace, error) {
	var workspaces []models.Workspace
	err := s.pool.WithConnection(ctx, "list user workspaces", func(conn *gorm.DB) error {
		var err error
		workspaces, err = s.workspaces.ListByUser(conn, userID)
		return err
	})
	if err != nil {
		return nil, s.asServiceError("list", "workspaces", err)
	}
	return workspaces, nil
}

// ListMembers returns a workspace's membership rows.
func (s *WorkspaceService) ListMembers(ctx context.Context, workspaceID int64) ([]models.WorkspaceMember, error) {
	var members []models.WorkspaceMember
	err := s.pool.WithConnection(ctx, "list workspace members", func(conn *gorm.DB) error {
		var err error
		members, err = s.workspaces.ListMembers(conn, workspaceID)
		return err
	})
	if err != nil {
		return nil, s.asServiceError("list members of", "workspace", err)
	}
	return members, nil
}

// IsMember reports whether a user belongs to a workspace.
func (s *WorkspaceService) IsMember(ctx context.Context, workspaceID, userID int64) (bool, error) {
	var isMember bool
	err := s.pool.WithConnection(ctx, "check workspace membership", func(conn *gorm.DB) error {
		var err error
		isMember, err = s.workspaces.IsMember(conn, workspaceID, userID)
		return err
	})
	if err != nil {
		return false, s.asServiceError("check membership of", "workspace", err)
	}
	return isMember, nil
}

// WorkspacePrompt is the listing row for a workspace's prompts.
type WorkspacePrompt struct {
	Prompt         models.Prompt `json:"prompt"`
	CurrentVersion string        `json:"currentVersion,omitempty"`
	TagCount       int64         `json:"tagCount"`
}

// ListWorkspacePrompts returns a workspace's non-deleted prompts with their
// current version label and tag count.
func (s *WorkspaceService) ListWorkspacePrompts(ctx context.Context, workspaceID int64) ([]WorkspacePrompt, error) {
	var rows []WorkspacePrompt
	err := s.pool.WithConnection(ctx, "list workspace prompts", func(conn *gorm.DB) error {
		prompts, err := s.prompts.ListByWorkspace(conn, workspaceID)
		if err != nil {
			return err
		}

		rows = make([]WorkspacePrompt, 0, len(prompts))
		for _, prompt := range prompts {
			row := WorkspacePrompt{Prompt: prompt}

			current, err := s.versions.CurrentVersion(conn, prompt.ID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if current != nil {
				row.CurrentVersion = current.Version
			}

			row.TagCount, err = s.tags.CountByPrompt(conn, prompt.ID)
			if err != nil {
				return err
			}
			rows = append(rows, row)
		}
		return nil
	})
	if err != nil {
		return nil, s.asServiceError("list prompts of", "workspace", err)
	}
	return rows, nil
}

func (s *WorkspaceService) asServiceError(operation, entity string, err error) error {
	var apiErr *errs.ApiErr
	if errors.As(err, &apiErr) {
		return err
	}
	return errs.NewDatabaseError(operation, entity, err)
}
