package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptdeck/promptdeck-backend/errs"
	"github.com/promptdeck/promptdeck-backend/models"
)

func TestCreateSharedWorkspaceAddsOwnerMembership(t *testing.T) {
	svc, _, raw := newTestWorkspaceService(t)
	ctx := context.Background()

	workspace, err := svc.CreateShared(ctx, 1, "team", "shared prompts")
	require.NoError(t, err)
	assert.NotZero(t, workspace.ID)
	assert.Equal(t, models.WorkspaceTypeShared, workspace.Type)

	var members []models.WorkspaceMember
	require.NoError(t, raw.Where("workspace_id = ?", workspace.ID).Find(&members).Error)
	require.Len(t, members, 1)
	assert.EqualValues(t, 1, members[0].UserID)
	assert.Equal(t, models.WorkspaceRoleOwner, members[0].Role)
}

func TestCreatePersonalWorkspace(t *testing.T) {
	svc, _, _ := newTestWorkspaceService(t)
	ctx := context.Background()

	workspace, err := svc.CreatePersonal(ctx, 7, "ada")
	require.NoError(t, err)
	assert.Equal(t, models.WorkspaceTypePersonal, workspace.Type)
	assert.Contains(t, workspace.Name, "ada")

	isMember, err := svc.IsMember(ctx, workspace.ID, 7)
	require.NoError(t, err)
	assert.True(t, isMember)
}

func TestCreateWorkspaceValidation(t *testing.T) {
	svc, _, _ := newTestWorkspaceService(t)
	ctx := context.Background()

	_, err := svc.CreateShared(ctx, 1, "  ", "")
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))

	_, err = svc.CreatePersonal(ctx, 1, "")
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

func TestAddAndRemoveMember(t *testing.T) {
	svc, _, _ := newTestWorkspaceService(t)
	ctx := context.Background()

	workspace, err := svc.CreateShared(ctx, 1, "team", "")
	require.NoError(t, err)

	require.NoError(t, svc.AddMember(ctx, workspace.ID, 2, models.WorkspaceRoleMember))

	isMember, err := svc.IsMember(ctx, workspace.ID, 2)
	require.NoError(t, err)
	assert.True(t, isMember)

	members, err := svc.ListMembers(ctx, workspace.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	require.NoError(t, svc.RemoveMember(ctx, workspace.ID, 2))

	isMember, err = svc.IsMember(ctx, workspace.ID, 2)
	require.NoError(t, err)
	assert.False(t, isMember)
}

func TestAddMemberInvalidRole(t *testing.T) {
	svc, _, _ := newTestWorkspaceService(t)

	err := svc.AddMember(context.Background(), 1, 2, "admin")
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

func TestAddMemberMissingWorkspace(t *testing.T) {
	svc, _, _ := newTestWorkspaceService(t)

	err := svc.AddMember(context.Background(), 9999, 2, models.WorkspaceRoleMember)
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestListUserWorkspaces(t *testing.T) {
	svc, _, _ := newTestWorkspaceService(t)
	ctx := context.Background()

	mine, err := svc.CreateShared(ctx, 1, "mine", "")
	require.NoError(t, err)
	joined, err := svc.CreateShared(ctx, 2, "theirs", "")
	require.NoError(t, err)
	require.NoError(t, svc.AddMember(ctx, joined.ID, 1, models.WorkspaceRoleMember))
	_, err = svc.CreateShared(ctx, 3, "unrelated", "")
	require.NoError(t, err)

	workspaces, err := svc.ListUserWorkspaces(ctx, 1)
	require.NoError(t, err)
	require.Len(t, workspaces, 2)
	ids := []int64{workspaces[0].ID, workspaces[1].ID}
	assert.Contains(t, ids, mine.ID)
	assert.Contains(t, ids, joined.ID)
}

func TestListWorkspacePrompts(t *testing.T) {
	svc, prompts, _ := newTestWorkspaceService(t)
	ctx := context.Background()

	workspace, err := svc.CreateShared(ctx, 1, "team", "")
	require.NoError(t, err)

	first, err := prompts.Create(ctx, CreatePromptInput{
		UserID: 1, WorkspaceID: workspace.ID, Title: "first", Content: "C",
		Tags: []string{"a", "b"},
	})
	require.NoError(t, err)
	_, err = prompts.Update(ctx, first.PromptID, 1, UpdatePromptInput{
		Content:          strPtr("C2"),
		CreateNewVersion: true,
	})
	require.NoError(t, err)

	_, err = prompts.Create(ctx, CreatePromptInput{
		UserID: 1, WorkspaceID: workspace.ID, Title: "second", Content: "C",
	})
	require.NoError(t, err)

	deleted, err := prompts.Create(ctx, CreatePromptInput{
		UserID: 1, WorkspaceID: workspace.ID, Title: "gone", Content: "C",
	})
	require.NoError(t, err)
	require.NoError(t, prompts.Delete(ctx, deleted.PromptID, 1))

	rows, err := svc.ListWorkspacePrompts(ctx, workspace.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byTitle := map[string]WorkspacePrompt{}
	for _, row := range rows {
		byTitle[row.Prompt.Title] = row
	}
	assert.Equal(t, "v1.1", byTitle["first"].CurrentVersion)
	assert.EqualValues(t, 2, byTitle["first"].TagCount)
	assert.Equal(t, "v1.0", byTitle["second"].CurrentVersion)
	assert.Zero(t, byTitle["second"].TagCount)
}
