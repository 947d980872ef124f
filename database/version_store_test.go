package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptdeck/promptdeck-backend/models"
)

func TestParseVersionLabel(t *testing.T) {
	tests := []struct {
		label     string
		major     int
		minor     int
		parseable bool
	}{
		{"v1.0", 1, 0, true},
		{"v1.3", 1, 3, true},
		{"v12.34", 12, 34, true},
		{"v0.9", 0, 9, true},
		{"1.0", 0, 0, false},
		{"v1", 0, 0, false},
		{"v1.2-beta", 0, 0, false},
		{"version one", 0, 0, false},
		{"", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			major, minor, ok := ParseVersionLabel(tt.label)
			assert.Equal(t, tt.parseable, ok)
			if tt.parseable {
				assert.Equal(t, tt.major, major)
				assert.Equal(t, tt.minor, minor)
			}
		})
	}
}

func TestNextVersionLabel(t *testing.T) {
	db := newTestDB(t)
	store := NewVersionStore()

	t.Run("no versions yields first label", func(t *testing.T) {
		promptID := seedPrompt(t, db, 1, 1)

		label, err := store.NextVersionLabel(db, promptID)
		require.NoError(t, err)
		assert.Equal(t, "v1.0", label)
	})

	t.Run("bumps minor of latest version", func(t *testing.T) {
		promptID := seedPrompt(t, db, 1, 1)
		for _, label := range []string{"v1.0", "v1.1", "v1.2", "v1.3"} {
			_, err := store.CreateVersion(db, promptID, label, "content", 1, "", true)
			require.NoError(t, err)
		}

		label, err := store.NextVersionLabel(db, promptID)
		require.NoError(t, err)
		assert.Equal(t, "v1.4", label)
	})

	t.Run("unparseable latest label falls back to first label", func(t *testing.T) {
		promptID := seedPrompt(t, db, 1, 1)
		_, err := store.CreateVersion(db, promptID, "draft-7", "content", 1, "", true)
		require.NoError(t, err)

		label, err := store.NextVersionLabel(db, promptID)
		require.NoError(t, err)
		assert.Equal(t, "v1.0", label)
	})
}

func TestCreateVersionMaintainsSingleCurrent(t *testing.T) {
	db := newTestDB(t)
	store := NewVersionStore()
	promptID := seedPrompt(t, db, 1, 1)

	v1, err := store.CreateVersion(db, promptID, "v1.0", "first", 1, "", true)
	require.NoError(t, err)
	assert.True(t, v1.IsCurrent)

	v2, err := store.CreateVersion(db, promptID, "v1.1", "second", 1, "changed things", true)
	require.NoError(t, err)
	assert.True(t, v2.IsCurrent)

	var currentCount int64
	require.NoError(t, db.Model(&models.PromptVersion{}).
		Where("prompt_id = ? AND is_current = ?", promptID, true).
		Count(&currentCount).Error)
	assert.EqualValues(t, 1, currentCount)

	current, err := store.CurrentVersion(db, promptID)
	require.NoError(t, err)
	assert.Equal(t, v2.ID, current.ID)
	assert.Equal(t, "second", current.Content)
	assert.Equal(t, "changed things", current.ChangeLog)

	// The superseded version stays in history, no longer current.
	var superseded models.PromptVersion
	require.NoError(t, db.First(&superseded, v1.ID).Error)
	assert.False(t, superseded.IsCurrent)
	assert.Equal(t, "first", superseded.Content)
}

func TestCreateVersionNotCurrentLeavesFlagAlone(t *testing.T) {
	db := newTestDB(t)
	store := NewVersionStore()
	promptID := seedPrompt(t, db, 1, 1)

	_, err := store.CreateVersion(db, promptID, "v1.0", "first", 1, "", true)
	require.NoError(t, err)
	draft, err := store.CreateVersion(db, promptID, "v1.1", "draft", 1, "", false)
	require.NoError(t, err)
	assert.False(t, draft.IsCurrent)

	current, err := store.CurrentVersion(db, promptID)
	require.NoError(t, err)
	assert.Equal(t, "v1.0", current.Version)
}

func TestUpdateCurrentContent(t *testing.T) {
	db := newTestDB(t)
	store := NewVersionStore()
	promptID := seedPrompt(t, db, 1, 1)

	created, err := store.CreateVersion(db, promptID, "v1.0", "original", 1, "", true)
	require.NoError(t, err)

	updated, err := store.UpdateCurrentContent(db, promptID, "edited in place")
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID, "no new version row should appear")
	assert.Equal(t, "v1.0", updated.Version, "label is untouched by in-place edits")
	assert.Equal(t, "edited in place", updated.Content)

	versions, err := store.ListByPrompt(db, promptID)
	require.NoError(t, err)
	assert.Len(t, versions, 1)
}

func TestListByPromptNewestFirst(t *testing.T) {
	db := newTestDB(t)
	store := NewVersionStore()
	promptID := seedPrompt(t, db, 1, 1)

	for _, label := range []string{"v1.0", "v1.1", "v1.2"} {
		_, err := store.CreateVersion(db, promptID, label, "content "+label, 1, "", true)
		require.NoError(t, err)
	}

	versions, err := store.ListByPrompt(db, promptID)
	require.NoError(t, err)
	require.Len(t, versions, 3)
	assert.Equal(t, "v1.2", versions[0].Version)
	assert.Equal(t, "v1.0", versions[2].Version)
}
