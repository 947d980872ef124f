package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/promptdeck/promptdeck-backend/models"
)

// WorkspaceRepo owns the workspaces and workspace_members tables.
type WorkspaceRepo struct{}

func NewWorkspaceRepo() *WorkspaceRepo {
	return &WorkspaceRepo{}
}

// Insert creates a workspace row.
func (r *WorkspaceRepo) Insert(conn *gorm.DB, workspace *models.Workspace) error {
	return conn.Create(workspace).Error
}

// FindByID returns a workspace by id.
func (r *WorkspaceRepo) FindByID(conn *gorm.DB, workspaceID int64) (*models.Workspace, error) {
	var workspace models.Workspace
	err := conn.First(&workspace, workspaceID).Error
	if err != nil {
		return nil, err
	}
	return &workspace, nil
}

// InsertMember adds a user to a workspace.
func (r *WorkspaceRepo) InsertMember(conn *gorm.DB, member *models.WorkspaceMember) error {
	return conn.Create(member).Error
}

// DeleteMember removes a user from a workspace. Removing a non-member is not
// an error; zero rows are affected.
func (r *WorkspaceRepo) DeleteMember(conn *gorm.DB, workspaceID, userID int64) error {
	return conn.Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Delete(&models.WorkspaceMember{}).Error
}

// ListByUser returns every workspace the user is a member of.
func (r *WorkspaceRepo) ListByUser(conn *gorm.DB, userID int64) ([]models.Workspace, error) {
	var workspaces []models.Workspace
	err := conn.
		Joins("JOIN workspace_members ON workspace_members.workspace_id = workspaces.id").
		Where("workspace_members.user_id = ?", userID).
		Order("workspaces.create_time").
		Find(&workspaces).Error
	return workspaces, err
}

// ListMembers returns a workspace's membership rows.
func (r *WorkspaceRepo) ListMembers(conn *gorm.DB, workspaceID int64) ([]models.WorkspaceMember, error) {
	var members []models.WorkspaceMember
	err := conn.Where("workspace_id = ?", workspaceID).
		Order("create_time").
		Find(&members).Error
	return members, err
}

// IsMember reports whether the user belongs to the workspace.
func (r *WorkspaceRepo) IsMember(conn *gorm.DB, workspaceID, userID int64) (bool, error) {
	var member models.WorkspaceMember
	err := conn.Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
