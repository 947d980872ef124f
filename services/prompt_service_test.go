package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptdeck/promptdeck-backend/errs"
	"github.com/promptdeck/promptdeck-backend/models"
)

func TestCreateAndGetPrompt(t *testing.T) {
	svc, _ := newTestPromptService(t)
	ctx := context.Background()

	result, err := svc.Create(ctx, CreatePromptInput{
		UserID:      1,
		WorkspaceID: 1,
		Title:       "T",
		Content:     "C",
	})
	require.NoError(t, err)
	assert.NotZero(t, result.PromptID)
	assert.NotEqual(t, uuid.Nil, result.UUID)
	assert.Equal(t, "v1.0", result.Version)

	detail, err := svc.Get(ctx, result.PromptID)
	require.NoError(t, err)
	assert.Equal(t, "T", detail.Prompt.Title)
	assert.Equal(t, "general", detail.Prompt.Category)
	assert.Equal(t, models.PromptStatusActive, detail.Prompt.Status)
	require.NotNil(t, detail.CurrentVersion)
	assert.Equal(t, "C", detail.CurrentVersion.Content)
	assert.True(t, detail.CurrentVersion.IsCurrent)
	assert.Empty(t, detail.Tags)
}

func TestCreatePromptWithTags(t *testing.T) {
	svc, _ := newTestPromptService(t)
	ctx := context.Background()

	result, err := svc.Create(ctx, CreatePromptInput{
		UserID:      1,
		WorkspaceID: 1,
		Title:       "Tagged",
		Content:     "body",
		Category:    "code",
		Tags:        []string{"go", "sql", "go"},
	})
	require.NoError(t, err)

	detail, err := svc.Get(ctx, result.PromptID)
	require.NoError(t, err)
	assert.Equal(t, "code", detail.Prompt.Category)
	assert.Equal(t, []string{"go", "sql"}, detail.Tags)
}

func TestCreatePromptRequiresTitle(t *testing.T) {
	svc, raw := newTestPromptService(t)

	_, err := svc.Create(context.Background(), CreatePromptInput{
		UserID:      1,
		WorkspaceID: 1,
		Title:       "   ",
		Content:     "C",
	})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))

	var count int64
	require.NoError(t, raw.Model(&models.Prompt{}).Count(&count).Error)
	assert.Zero(t, count, "nothing may be written for a rejected create")
}

func TestUpdateWithNewVersion(t *testing.T) {
	svc, raw := newTestPromptService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreatePromptInput{
		UserID: 1, WorkspaceID: 1, Title: "T", Content: "C",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.PromptID, 1, UpdatePromptInput{
		Content:          strPtr("C2"),
		CreateNewVersion: true,
		ChangeLog:        "second draft",
	})
	require.NoError(t, err)
	assert.Equal(t, "v1.1", updated.Version)

	detail, err := svc.Get(ctx, created.PromptID)
	require.NoError(t, err)
	assert.Equal(t, "v1.1", detail.CurrentVersion.Version)
	assert.Equal(t, "C2", detail.CurrentVersion.Content)
	assert.Equal(t, "second draft", detail.CurrentVersion.ChangeLog)

	// v1.0 remains in history, no longer current.
	var history []models.PromptVersion
	require.NoError(t, raw.Where("prompt_id = ?", created.PromptID).Order("id").Find(&history).Error)
	require.Len(t, history, 2)
	assert.Equal(t, "v1.0", history[0].Version)
	assert.False(t, history[0].IsCurrent)
	assert.Equal(t, "C", history[0].Content)
}

func TestUpdateContentInPlace(t *testing.T) {
	svc, raw := newTestPromptService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreatePromptInput{
		UserID: 1, WorkspaceID: 1, Title: "T", Content: "C",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.PromptID, 1, UpdatePromptInput{
		Content: strPtr("C-edited"),
	})
	require.NoError(t, err)
	assert.Equal(t, "v1.0", updated.Version, "in-place edits keep the label")
	assert.Equal(t, created.VersionID, updated.VersionID, "in-place edits keep the row")

	var count int64
	require.NoError(t, raw.Model(&models.PromptVersion{}).Where("prompt_id = ?", created.PromptID).Count(&count).Error)
	assert.EqualValues(t, 1, count, "no history row may appear for an in-place edit")
}

func TestUpdateScalarFieldsOnly(t *testing.T) {
	svc, _ := newTestPromptService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreatePromptInput{
		UserID: 1, WorkspaceID: 1, Title: "T", Content: "C",
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.PromptID, 1, UpdatePromptInput{
		Title:       strPtr("T2"),
		Description: strPtr("described"),
		Category:    strPtr("analysis"),
	})
	require.NoError(t, err)

	detail, err := svc.Get(ctx, created.PromptID)
	require.NoError(t, err)
	assert.Equal(t, "T2", detail.Prompt.Title)
	require.NotNil(t, detail.Prompt.Description)
	assert.Equal(t, "described", *detail.Prompt.Description)
	assert.Equal(t, "analysis", detail.Prompt.Category)
	assert.Equal(t, "C", detail.CurrentVersion.Content, "content is untouched when not supplied")
}

func TestUpdateReplacesTags(t *testing.T) {
	svc, _ := newTestPromptService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreatePromptInput{
		UserID: 1, WorkspaceID: 1, Title: "T", Content: "C",
		Tags: []string{"old1", "old2"},
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.PromptID, 1, UpdatePromptInput{
		Tags: []string{"new"},
	})
	require.NoError(t, err)

	detail, err := svc.Get(ctx, created.PromptID)
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, detail.Tags)
}

func TestUpdateByNonOwnerForbidden(t *testing.T) {
	svc, _ := newTestPromptService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreatePromptInput{
		UserID: 1, WorkspaceID: 1, Title: "T", Content: "C",
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.PromptID, 2, UpdatePromptInput{
		Title: strPtr("X"),
	})
	require.Error(t, err)
	assert.True(t, errs.IsForbidden(err))

	// No row changed.
	detail, err := svc.Get(ctx, created.PromptID)
	require.NoError(t, err)
	assert.Equal(t, "T", detail.Prompt.Title)
}

func TestUpdateMissingPromptNotFound(t *testing.T) {
	svc, _ := newTestPromptService(t)

	_, err := svc.Update(context.Background(), 9999, 1, UpdatePromptInput{
		Title: strPtr("X"),
	})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestDeletedPromptHiddenFromReadsAndWrites(t *testing.T) {
	svc, raw := newTestPromptService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreatePromptInput{
		UserID: 1, WorkspaceID: 1, Title: "T", Content: "C",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.PromptID, 1))

	// The row physically persists with deleted status.
	var prompt models.Prompt
	require.NoError(t, raw.First(&prompt, created.PromptID).Error)
	assert.Equal(t, models.PromptStatusDeleted, prompt.Status)

	_, err = svc.Get(ctx, created.PromptID)
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))

	_, err = svc.Update(ctx, created.PromptID, 1, UpdatePromptInput{Title: strPtr("X")})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))

	_, err = svc.ListVersions(ctx, created.PromptID)
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestUpdateRejectsInvalidStatus(t *testing.T) {
	svc, _ := newTestPromptService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreatePromptInput{
		UserID: 1, WorkspaceID: 1, Title: "T", Content: "C",
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.PromptID, 1, UpdatePromptInput{
		Status: strPtr("archived"),
	})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

func TestUpdateAtomicAcrossStores(t *testing.T) {
	svc, raw := newTestPromptService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreatePromptInput{
		UserID: 1, WorkspaceID: 1, Title: "T", Content: "C",
	})
	require.NoError(t, err)

	// Force the tag write to fail after the version write succeeded.
	require.NoError(t, raw.Migrator().DropTable(&models.PromptTag{}))

	_, err = svc.Update(ctx, created.PromptID, 1, UpdatePromptInput{
		Content:          strPtr("C2"),
		CreateNewVersion: true,
		Tags:             []string{"a"},
	})
	require.Error(t, err)

	// The version insert must be rolled back with the failed tag write.
	var versions []models.PromptVersion
	require.NoError(t, raw.Where("prompt_id = ?", created.PromptID).Find(&versions).Error)
	require.Len(t, versions, 1)
	assert.Equal(t, "v1.0", versions[0].Version)
	assert.Equal(t, "C", versions[0].Content)
	assert.True(t, versions[0].IsCurrent)
}

func TestVersionHistoryAccumulates(t *testing.T) {
	svc, _ := newTestPromptService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreatePromptInput{
		UserID: 1, WorkspaceID: 1, Title: "T", Content: "first",
	})
	require.NoError(t, err)

	for _, content := range []string{"second", "third"} {
		_, err := svc.Update(ctx, created.PromptID, 1, UpdatePromptInput{
			Content:          strPtr(content),
			CreateNewVersion: true,
		})
		require.NoError(t, err)
	}

	versions, err := svc.ListVersions(ctx, created.PromptID)
	require.NoError(t, err)
	require.Len(t, versions, 3)
	assert.Equal(t, "v1.2", versions[0].Version)
	assert.Equal(t, "third", versions[0].Content)
	assert.True(t, versions[0].IsCurrent)

	currentCount := 0
	for _, v := range versions {
		if v.IsCurrent {
			currentCount++
		}
	}
	assert.Equal(t, 1, currentCount, "exactly one version may be current")
}

func TestListRecent(t *testing.T) {
	svc, _ := newTestPromptService(t)
	ctx := context.Background()

	for _, title := range []string{"one", "two", "three"} {
		_, err := svc.Create(ctx, CreatePromptInput{
			UserID: 1, WorkspaceID: 1, Title: title, Content: "C",
		})
		require.NoError(t, err)
	}
	other, err := svc.Create(ctx, CreatePromptInput{
		UserID: 2, WorkspaceID: 1, Title: "not mine", Content: "C",
	})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, other.PromptID, 2))

	prompts, err := svc.ListRecent(ctx, 1, 2)
	require.NoError(t, err)
	assert.Len(t, prompts, 2)
	for _, p := range prompts {
		assert.EqualValues(t, 1, p.UserID)
	}
}
