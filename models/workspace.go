package models

import "time"

// Workspace types.
const (
	WorkspaceTypePersonal = "personal"
	WorkspaceTypeShared   = "shared"
)

// Workspace member roles.
const (
	WorkspaceRoleOwner  = "owner"
	WorkspaceRoleMember = "member"
)

// Workspace groups prompts, either as a user's personal space or a shared
// collaboration space.
type Workspace struct {
	ID          int64     `json:"id" db:"id" gorm:"column:id;primaryKey;autoIncrement;not null"`
	Name        string    `json:"name" db:"name" gorm:"column:name;type:varchar(128);not null"`
	Description string    `json:"description,omitempty" db:"description" gorm:"column:description;type:text"`
	Type        string    `json:"type" db:"type" gorm:"column:type;type:varchar(16);not null;default:personal"`
	OwnerID     int64     `json:"ownerId" db:"owner_id" gorm:"column:owner_id;not null;index:idx_workspace_owner"`
	CreateTime  time.Time `json:"createTime" db:"create_time" gorm:"column:create_time;not null;autoCreateTime"`
	UpdateTime  time.Time `json:"updateTime" db:"update_time" gorm:"column:update_time;not null;autoUpdateTime"`

	Members []WorkspaceMember `json:"members,omitempty" gorm:"foreignKey:WorkspaceID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Workspace) TableName() string {
	return "workspaces"
}

// WorkspaceMember links a user to a workspace with a role.
type WorkspaceMember struct {
	ID          int64     `json:"id" db:"id" gorm:"column:id;primaryKey;autoIncrement;not null"`
	WorkspaceID int64     `json:"workspaceId" db:"workspace_id" gorm:"column:workspace_id;not null;uniqueIndex:idx_workspace_member_unique"`
	UserID      int64     `json:"userId" db:"user_id" gorm:"column:user_id;not null;index:idx_member_user;uniqueIndex:idx_workspace_member_unique"`
	Role        string    `json:"role" db:"role" gorm:"column:role;type:varchar(16);not null;default:member"`
	CreateTime  time.Time `json:"createTime" db:"create_time" gorm:"column:create_time;not null;autoCreateTime"`
}

func (WorkspaceMember) TableName() string {
	return "workspace_members"
}
