package models

import (
	"time"

	"github.com/google/uuid"
)

// Prompt statuses. Deleted prompts stay in the table but are excluded from
// every read and mutation path.
const (
	PromptStatusActive  = "active"
	PromptStatusDeleted = "deleted"
)

// Prompt is a versioned text document owned by one user inside one workspace.
type Prompt struct {
	ID          int64     `json:"id" db:"id" gorm:"column:id;primaryKey;autoIncrement;not null"`
	UUID        uuid.UUID `json:"uuid" db:"uuid" gorm:"column:uuid;type:varchar(36);not null;uniqueIndex:idx_prompt_uuid"`
	Title       string    `json:"title" db:"title" gorm:"column:title;type:varchar(255);not null"`
	Description *string   `json:"description,omitempty" db:"description" gorm:"column:description;type:text"`
	Category    string    `json:"category" db:"category" gorm:"column:category;type:varchar(64);not null;default:general"`
	UserID      int64     `json:"userId" db:"user_id" gorm:"column:user_id;not null;index:idx_prompt_user"`
	WorkspaceID int64     `json:"workspaceId" db:"workspace_id" gorm:"column:workspace_id;not null;index:idx_prompt_workspace"`
	Status      string    `json:"status" db:"status" gorm:"column:status;type:varchar(16);not null;default:active"`
	CreateTime  time.Time `json:"createTime" db:"create_time" gorm:"column:create_time;not null;autoCreateTime"`
	UpdateTime  time.Time `json:"updateTime" db:"update_time" gorm:"column:update_time;not null;autoUpdateTime"`

	Versions []PromptVersion `json:"versions,omitempty" gorm:"foreignKey:PromptID;references:ID;constraint:OnDelete:CASCADE"`
	Tags     []PromptTag     `json:"tags,omitempty" gorm:"foreignKey:PromptID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Prompt) TableName() string {
	return "prompts"
}

// IsEditableBy reports whether userID may mutate this prompt.
func (p *Prompt) IsEditableBy(userID int64) bool {
	return p.UserID == userID && p.Status == PromptStatusActive
}
