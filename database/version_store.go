package database

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"gorm.io/gorm"

	"github.com/promptdeck/promptdeck-backend/models"
)

// FirstVersionLabel is the label of a prompt's initial version and the
// fallback whenever the latest label cannot be parsed.
const FirstVersionLabel = "v1.0"

var versionLabelPattern = regexp.MustCompile(`^v(\d+)\.(\d+)$`)

// VersionStore owns the prompt_versions table logic. All methods run on the
// connection handed in by the caller so they participate in the caller's
// transaction; SQL failures propagate unmodified and are never retried here.
type VersionStore struct{}

func NewVersionStore() *VersionStore {
	return &VersionStore{}
}

// CreateVersion inserts a new version row for a prompt. When makeCurrent is
// set, the current flag is first cleared on all existing versions of the
// prompt. The clear is unconditional so the first version ever created needs
// no special case: updating zero rows is fine.
func (s *VersionStore) CreateVersion(conn *gorm.DB, promptID int64, label, content string, authorID int64, changeLog string, makeCurrent bool) (*models.PromptVersion, error) {
	if makeCurrent {
		if err := conn.Model(&models.PromptVersion{}).
			Where("prompt_id = ?", promptID).
			Update("is_current", false).Error; err != nil {
			return nil, err
		}
	}

	version := &models.PromptVersion{
		PromptID:  promptID,
		Version:   label,
		Content:   content,
		ChangeLog: changeLog,
		IsCurrent: makeCurrent,
		AuthorID:  authorID,
	}
	if err := conn.Create(version).Error; err != nil {
		return nil, err
	}
	return version, nil
}

// NextVersionLabel computes the label for a prompt's next version by bumping
// the minor number of the most recently created version. A prompt with no
// versions, or one whose latest label does not parse as v<major>.<minor>,
// gets the first label back rather than an error. There is no major-bump
// path; labels only ever advance by minor increments.
func (s *VersionStore) NextVersionLabel(conn *gorm.DB, promptID int64) (string, error) {
	var latest models.PromptVersion
	err := conn.Where("prompt_id = ?", promptID).
		Order("create_time DESC, id DESC").
		First(&latest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return FirstVersionLabel, nil
		}
		return "", err
	}

	major, minor, ok := ParseVersionLabel(latest.Version)
	if !ok {
		return FirstVersionLabel, nil
	}
	return FormatVersionLabel(major, minor+1), nil
}

// UpdateCurrentContent edits the current version's content in place without
// creating history. Used when a caller updates content but opts out of a new
// version.
func (s *VersionStore) UpdateCurrentContent(conn *gorm.DB, promptID int64, content string) (*models.PromptVersion, error) {
	err := conn.Model(&models.PromptVersion{}).
		Where("prompt_id = ? AND is_current = ?", promptID, true).
		Update("content", content).Error
	if err != nil {
		return nil, err
	}
	return s.CurrentVersion(conn, promptID)
}

// CurrentVersion returns the single version row flagged current for a prompt.
func (s *VersionStore) CurrentVersion(conn *gorm.DB, promptID int64) (*models.PromptVersion, error) {
	var version models.PromptVersion
	err := conn.Where("prompt_id = ? AND is_current = ?", promptID, true).
		First(&version).Error
	if err != nil {
		return nil, err
	}
	return &version, nil
}

// ListByPrompt returns a prompt's full version history, newest first.
func (s *VersionStore) ListByPrompt(conn *gorm.DB, promptID int64) ([]models.PromptVersion, error) {
	var versions []models.PromptVersion
	err := conn.Where("prompt_id = ?", promptID).
		Order("create_time DESC, id DESC").
		Find(&versions).Error
	return versions, err
}

// ParseVersionLabel splits a v<major>.<minor> label into its numbers. ok is
// false for anything else, including labels with trailing garbage.
func ParseVersionLabel(label string) (major, minor int, ok bool) {
	match := versionLabelPattern.FindStringSubmatch(label)
	if match == nil {
		return 0, 0, false
	}
	major, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, 0, false
	}
	minor, err = strconv.Atoi(match[2])
	if err != nil {
		return 0, 0, false
	}
	return major, minor, true
}

// FormatVersionLabel renders a v<major>.<minor> label.
func FormatVersionLabel(major, minor int) string {
	return fmt.Sprintf("v%d.%d", major, minor)
}
