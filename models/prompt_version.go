package models

import "time"

// PromptVersion is one historical revision of a prompt's content. For every
// non-deleted prompt exactly one version row has IsCurrent set; superseded
// versions are immutable history.
type PromptVersion struct {
	ID         int64     `json:"id" db:"id" gorm:"column:id;primaryKey;autoIncrement;not null"`
	PromptID   int64     `json:"promptId" db:"prompt_id" gorm:"column:prompt_id;not null;index:idx_version_prompt"`
	Version    string    `json:"version" db:"version" gorm:"column:version;type:varchar(32);not null"`
	Content    string    `json:"content" db:"content" gorm:"column:content;type:text;not null"`
	ChangeLog  string    `json:"changeLog,omitempty" db:"change_log" gorm:"column:change_log;type:text"`
	IsCurrent  bool      `json:"isCurrent" db:"is_current" gorm:"column:is_current;not null;default:false"`
	AuthorID   int64     `json:"authorId" db:"author_id" gorm:"column:author_id;not null"`
	CreateTime time.Time `json:"createTime" db:"create_time" gorm:"column:create_time;not null;autoCreateTime"`
	UpdateTime time.Time `json:"updateTime" db:"update_time" gorm:"column:update_time;not null;autoUpdateTime"`
}

func (PromptVersion) TableName() string {
	return "prompt_versions"
}
