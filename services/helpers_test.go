package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/promptdeck/promptdeck-backend/config"
	"github.com/promptdeck/promptdeck-backend/database"
)

// newTestEnv opens a migrated sqlite database, wraps it in a pool and
// returns the raw handle for direct row assertions.
func newTestEnv(t *testing.T) (*database.Pool, database.Database, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(
		sqlite.Open(filepath.Join(t.TempDir(), "test.db")),
		&gorm.Config{Logger: logger.Discard},
	)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	pool, err := database.NewPool(db, config.DatabaseConfig{
		MaxConns:       2,
		AcquireTimeout: 2 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	return pool, database.New(), db
}

func newTestPromptService(t *testing.T) (*PromptService, *gorm.DB) {
	t.Helper()
	pool, db, raw := newTestEnv(t)
	return NewPromptService(pool, db), raw
}

func newTestWorkspaceService(t *testing.T) (*WorkspaceService, *PromptService, *gorm.DB) {
	t.Helper()
	pool, db, raw := newTestEnv(t)
	return NewWorkspaceService(pool, db), NewPromptService(pool, db), raw
}

func strPtr(s string) *string {
	return &s
}
