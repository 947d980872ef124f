package models

import "time"

// PromptTag is a (prompt, tag name) pair. Tags have no lifecycle of their
// own; the set is replaced wholesale whenever a prompt update supplies tags.
type PromptTag struct {
	ID         int64     `json:"id" db:"id" gorm:"column:id;primaryKey;autoIncrement;not null"`
	PromptID   int64     `json:"promptId" db:"prompt_id" gorm:"column:prompt_id;not null;index:idx_tag_prompt;uniqueIndex:idx_prompt_tag_unique"`
	TagName    string    `json:"tagName" db:"tag_name" gorm:"column:tag_name;type:varchar(64);not null;uniqueIndex:idx_prompt_tag_unique"`
	CreateTime time.Time `json:"createTime" db:"create_time" gorm:"column:create_time;not null;autoCreateTime"`
}

func (PromptTag) TableName() string {
	return "prompt_tags"
}
