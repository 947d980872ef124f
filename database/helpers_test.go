package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/promptdeck/promptdeck-backend/config"
	"github.com/promptdeck/promptdeck-backend/models"
)

// newTestDB opens a migrated sqlite database in a per-test directory.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(
		sqlite.Open(filepath.Join(t.TempDir(), "test.db")),
		&gorm.Config{Logger: logger.Discard},
	)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

// newTestPool wraps a fresh test database in a pool with the given limits.
func newTestPool(t *testing.T, maxConns int, acquireTimeout time.Duration) (*Pool, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	pool, err := NewPool(db, config.DatabaseConfig{
		MaxConns:       maxConns,
		AcquireTimeout: acquireTimeout,
	})
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })
	return pool, db
}

// seedPrompt inserts a bare active prompt row and returns its id.
func seedPrompt(t *testing.T, db *gorm.DB, userID, workspaceID int64) int64 {
	t.Helper()

	prompt := &models.Prompt{
		UUID:        uuid.New(),
		Title:       "seed prompt",
		Category:    "general",
		UserID:      userID,
		WorkspaceID: workspaceID,
		Status:      models.PromptStatusActive,
	}
	require.NoError(t, db.Create(prompt).Error)
	return prompt.ID
}
