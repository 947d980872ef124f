package database

import (
	"gorm.io/gorm"

	"github.com/promptdeck/promptdeck-backend/models"
)

// PromptRepo owns the prompts table logic.
type PromptRepo struct{}

func NewPromptRepo() *PromptRepo {
	return &PromptRepo{}
}

// PromptFieldUpdates carries the optional scalar fields an update may change.
// A nil pointer means "leave the column alone"; only supplied fields make it
// into the UPDATE statement.
type PromptFieldUpdates struct {
	Title       *string
	Description *string
	Category    *string
	Status      *string
}

func (u PromptFieldUpdates) changes() map[string]interface{} {
	changes := make(map[string]interface{}, 4)
	if u.Title != nil {
		changes["title"] = *u.Title
	}
	if u.Description != nil {
		changes["description"] = *u.Description
	}
	if u.Category != nil {
		changes["category"] = *u.Category
	}
	if u.Status != nil {
		changes["status"] = *u.Status
	}
	return changes
}

// Insert creates a new prompt row.
func (r *PromptRepo) Insert(conn *gorm.DB, prompt *models.Prompt) error {
	return conn.Create(prompt).Error
}

// FindForUpdate reads the ownership fields used for the single-owner check.
// Deleted prompts are returned as-is; the caller decides how to surface them.
func (r *PromptRepo) FindForUpdate(conn *gorm.DB, promptID int64) (*models.Prompt, error) {
	var prompt models.Prompt
	err := conn.Select("id", "user_id", "workspace_id", "status").
		First(&prompt, promptID).Error
	if err != nil {
		return nil, err
	}
	return &prompt, nil
}

// UpdateFields applies the supplied scalar field changes. A no-op when no
// field is present.
func (r *PromptRepo) UpdateFields(conn *gorm.DB, promptID int64, updates PromptFieldUpdates) error {
	changes := updates.changes()
	if len(changes) == 0 {
		return nil
	}
	return conn.Model(&models.Prompt{}).
		Where("id = ?", promptID).
		Updates(changes).Error
}

// FindActive returns a prompt by id, excluding soft-deleted rows.
func (r *PromptRepo) FindActive(conn *gorm.DB, promptID int64) (*models.Prompt, error) {
	var prompt models.Prompt
	err := conn.Where("id = ? AND status <> ?", promptID, models.PromptStatusDeleted).
		First(&prompt).Error
	if err != nil {
		return nil, err
	}
	return &prompt, nil
}

// ListRecentByUser returns the user's most recently updated non-deleted
// prompts.
func (r *PromptRepo) ListRecentByUser(conn *gorm.DB, userID int64, limit int) ([]models.Prompt, error) {
	var prompts []models.Prompt
	err := conn.Where("user_id = ? AND status <> ?", userID, models.PromptStatusDeleted).
		Order("update_time DESC").
		Limit(limit).
		Find(&prompts).Error
	return prompts, err
}

// ListByWorkspace returns a workspace's non-deleted prompts, newest first.
func (r *PromptRepo) ListByWorkspace(conn *gorm.DB, workspaceID int64) ([]models.Prompt, error) {
	var prompts []models.Prompt
	err := conn.Where("workspace_id = ? AND status <> ?", workspaceID, models.PromptStatusDeleted).
		Order("update_time DESC").
		Find(&prompts).Error
	return prompts, err
}
