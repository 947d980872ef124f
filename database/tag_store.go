package database

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/promptdeck/promptdeck-backend/models"
)

// TagStore owns the prompt_tags table logic. A prompt's tag set is always
// replaced wholesale; tags are never patched incrementally, so a removal can
// never leave an orphaned row behind.
type TagStore struct{}

func NewTagStore() *TagStore {
	return &TagStore{}
}

// ReplaceTags deletes every existing tag row for the prompt and inserts the
// supplied set. Blank tags are skipped and duplicate (prompt, tag) pairs are
// silently ignored, so the call is idempotent for a given input.
func (s *TagStore) ReplaceTags(conn *gorm.DB, promptID int64, tags []string) error {
	if err := conn.Where("prompt_id = ?", promptID).
		Delete(&models.PromptTag{}).Error; err != nil {
		return err
	}
	return s.saveTags(conn, promptID, tags)
}

func (s *TagStore) saveTags(conn *gorm.DB, promptID int64, tags []string) error {
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			continue
		}
		row := models.PromptTag{PromptID: promptID, TagName: tag}
		if err := conn.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

// ListTagNames returns the prompt's tag names in stable order.
func (s *TagStore) ListTagNames(conn *gorm.DB, promptID int64) ([]string, error) {
	var names []string
	err := conn.Model(&models.PromptTag{}).
		Where("prompt_id = ?", promptID).
		Order("tag_name").
		Pluck("tag_name", &names).Error
	return names, err
}

// CountByPrompt returns how many tags a prompt carries.
func (s *TagStore) CountByPrompt(conn *gorm.DB, promptID int64) (int64, error) {
	var count int64
	err := conn.Model(&models.PromptTag{}).
		Where("prompt_id = ?", promptID).
		Count(&count).Error
	return count, err
}
