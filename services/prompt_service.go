package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/promptdeck/promptdeck-backend/database"
	"github.com/promptdeck/promptdeck-backend/errs"
	"github.com/promptdeck/promptdeck-backend/models"
)

// PromptService orchestrates prompt create/update/get over the version and
// tag stores. Every mutating operation runs in exactly one pooled
// transaction, so the prompt row, its versions and its tags commit together
// or not at all.
type PromptService struct {
	pool     *database.Pool
	prompts  *database.PromptRepo
	versions *database.VersionStore
	tags     *database.TagStore
	logger   zerolog.Logger
}

func NewPromptService(pool *database.Pool, db database.Database) *PromptService {
	logger := log.With().Str("serviceName", "promptService").Logger()

	return &PromptService{
		pool:     pool,
		prompts:  db.PromptRepo(),
		versions: db.VersionStore(),
		tags:     db.TagStore(),
		logger:   logger,
	}
}

// CreatePromptInput carries everything needed to create a prompt with its
// initial version.
type CreatePromptInput struct {
	UserID      int64    `json:"userId"`
	WorkspaceID int64    `json:"workspaceId"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Category    string   `json:"category"`
	Description *string  `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// CreatePromptResult identifies the created prompt and its initial version.
type CreatePromptResult struct {
	PromptID  int64     `json:"promptId"`
	UUID      uuid.UUID `json:"uuid"`
	VersionID int64     `json:"versionId"`
	Version   string    `json:"version"`
}

// Create inserts a prompt, its v1.0 current version and any supplied tags in
// one transaction.
func (s *PromptService) Create(ctx context.Context, input CreatePromptInput) (*CreatePromptResult, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, errs.NewValidationError("title", "title is required")
	}

	category := input.Category
	if category == "" {
		category = "general"
	}

	var result CreatePromptResult
	err := s.pool.WithTransaction(ctx, "create prompt", func(tx *gorm.DB) error {
		prompt := &models.Prompt{
			UUID:        uuid.New(),
			Title:       input.Title,
			Description: input.Description,
			Category:    category,
			UserID:      input.UserID,
			WorkspaceID: input.WorkspaceID,
			Status:      models.PromptStatusActive,
		}
		if err := s.prompts.Insert(tx, prompt); err != nil {
			return err
		}

		version, err := s.versions.CreateVersion(tx, prompt.ID, database.FirstVersionLabel, input.Content, input.UserID, "", true)
		if err != nil {
			return err
		}

		if len(input.Tags) > 0 {
			if err := s.tags.ReplaceTags(tx, prompt.ID, input.Tags); err != nil {
				return err
			}
		}

		result = CreatePromptResult{
			PromptID:  prompt.ID,
			UUID:      prompt.UUID,
			VersionID: version.ID,
			Version:   version.Version,
		}
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("userId", input.UserID).Msg("create prompt failed")
		return nil, s.asServiceError("create", "prompt", err)
	}

	s.logger.Info().
		Int64("promptId", result.PromptID).
		Str("uuid", result.UUID.String()).
		Msg("prompt created")
	return &result, nil
}

// UpdatePromptInput carries the optional changes an update may apply. Nil
// pointers leave the corresponding field untouched; Tags replaces the whole
// tag set when non-nil. Content is edited in place unless CreateNewVersion
// is set, in which case a new current version is appended.
type UpdatePromptInput struct {
	Title            *string  `json:"title,omitempty"`
	Description      *string  `json:"description,omitempty"`
	Category         *string  `json:"category,omitempty"`
	Status           *string  `json:"status,omitempty"`
	Content          *string  `json:"content,omitempty"`
	CreateNewVersion bool     `json:"createNewVersion,omitempty"`
	ChangeLog        string   `json:"changeLog,omitempty"`
	Tags             []string `json:"tags,omitempty"`
}

// UpdatePromptResult identifies the updated prompt, plus the touched version
// when the update had content changes.
type UpdatePromptResult struct {
	PromptID  int64  `json:"promptId"`
	VersionID int64  `json:"versionId,omitempty"`
	Version   string `json:"version,omitempty"`
}

// Update applies an owner-checked, atomic update to a prompt. The owner and
// status are read inside the same transaction that applies the writes.
func (s *PromptService) Update(ctx context.Context, promptID, userID int64, input UpdatePromptInput) (*UpdatePromptResult, error) {
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return nil, errs.NewValidationError("title", "title cannot be empty")
	}
	if input.Status != nil && *input.Status != models.PromptStatusActive && *input.Status != models.PromptStatusDeleted {
		return nil, errs.NewValidationError("status", "status must be active or deleted")
	}

	var result UpdatePromptResult
	err := s.pool.WithTransaction(ctx, "update prompt", func(tx *gorm.DB) error {
		prompt, err := s.prompts.FindForUpdate(tx, promptID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewNotFound("prompt")
			}
			return err
		}
		if prompt.Status == models.PromptStatusDeleted {
			return errs.NewNotFound("prompt")
		}
		if prompt.UserID != userID {
			return errs.NewForbiddenError("only the prompt owner can edit it")
		}

		fields := database.PromptFieldUpdates{
			Title:       input.Title,
			Description: input.Description,
			Category:    input.Category,
			Status:      input.Status,
		}
		if err := s.prompts.UpdateFields(tx, promptID, fields); err != nil {
			return err
		}

		if input.Content != nil {
			var version *models.PromptVersion
			if input.CreateNewVersion {
				label, err := s.versions.NextVersionLabel(tx, promptID)
				if err != nil {
					return err
				}
				version, err = s.versions.CreateVersion(tx, promptID, label, *input.Content, userID, input.ChangeLog, true)
				if err != nil {
					return err
				}
			} else {
				version, err = s.versions.UpdateCurrentContent(tx, promptID, *input.Content)
				if err != nil {
					return err
				}
			}
			result.VersionID = version.ID
			result.Version = version.Version
		}

		if input.Tags != nil {
			if err := s.tags.ReplaceTags(tx, promptID, input.Tags); err != nil {
				return err
			}
		}

		result.PromptID = promptID
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("promptId", promptID).Msg("update prompt failed")
		return nil, s.asServiceError("update", "prompt", err)
	}

	s.logger.Info().Int64("promptId", promptID).Msg("prompt updated")
	return &result, nil
}

// PromptDetail is the read-only aggregate assembled by Get.
type PromptDetail struct {
	Prompt         models.Prompt         `json:"prompt"`
	CurrentVersion *models.PromptVersion `json:"currentVersion,omitempty"`
	Tags           []string              `json:"tags"`
}

// Get assembles a prompt with its current version and tag names. Deleted and
// absent prompts both come back as not-found. Workspace membership is not
// checked here; reads filter on status only.
func (s *PromptService) Get(ctx context.Context, promptID int64) (*PromptDetail, error) {
	var detail PromptDetail
	err := s.pool.WithConnection(ctx, "get prompt", func(conn *gorm.DB) error {
		prompt, err := s.prompts.FindActive(conn, promptID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewNotFound("prompt")
			}
			return err
		}

		current, err := s.versions.CurrentVersion(conn, promptID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		tags, err := s.tags.ListTagNames(conn, promptID)
		if err != nil {
			return err
		}
		if tags == nil {
			tags = []string{}
		}

		detail = PromptDetail{
			Prompt:         *prompt,
			CurrentVersion: current,
			Tags:           tags,
		}
		return nil
	})
	if err != nil {
		return nil, s.asServiceError("get", "prompt", err)
	}
	return &detail, nil
}

// ListVersions returns a non-deleted prompt's full version history, newest
// first.
func (s *PromptService) ListVersions(ctx context.Context, promptID int64) ([]models.PromptVersion, error) {
	var versions []models.PromptVersion
	err := s.pool.WithConnection(ctx, "list prompt versions", func(conn *gorm.DB) error {
		if _, err := s.prompts.FindActive(conn, promptID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewNotFound("prompt")
			}
			return err
		}

		var err error
		versions, err = s.versions.ListByPrompt(conn, promptID)
		return err
	})
	if err != nil {
		return nil, s.asServiceError("list versions of", "prompt", err)
	}
	return versions, nil
}

// ListRecent returns the user's most recently updated prompts for the
// dashboard.
func (s *PromptService) ListRecent(ctx context.Context, userID int64, limit int) ([]models.Prompt, error) {
	if limit <= 0 {
		limit = 4
	}
	var prompts []models.Prompt
	err := s.pool.WithConnection(ctx, "list recent prompts", func(conn *gorm.DB) error {
		var err error
		prompts, err = s.prompts.ListRecentByUser(conn, userID, limit)
		return err
	})
	if err != nil {
		return nil, s.asServiceError("list recent", "prompts", err)
	}
	return prompts, nil
}

// Delete soft-deletes a prompt through the same owner-checked update path;
// the transition is one-way.
func (s *PromptService) Delete(ctx context.Context, promptID, userID int64) error {
	status := models.PromptStatusDeleted
	_, err := s.Update(ctx, promptID, userID, UpdatePromptInput{Status: &status})
	return err
}

// asServiceError passes through errors the service itself classified
// (validation, not found, forbidden, pool exhausted) and wraps raw storage
// failures as database errors.
func (s *PromptService) asServiceError(operation, entity string, err error) error {
	var apiErr *errs.ApiErr
	if errors.As(err, &apiErr) {
		return err
	}
	return errs.NewDatabaseError(operation, entity, err)
}
