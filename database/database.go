package database

import (
	"gorm.io/gorm"

	"github.com/promptdeck/promptdeck-backend/models"
)

// Database bundles the per-table stores. Store methods all take the
// connection they should run on, so one Database instance serves both
// transactional and plain-connection callers.
type Database struct {
	promptRepo    *PromptRepo
	versionStore  *VersionStore
	tagStore      *TagStore
	workspaceRepo *WorkspaceRepo
}

// New initializes a new Database struct with each store
func New() Database {
	return Database{
		promptRepo:    NewPromptRepo(),
		versionStore:  NewVersionStore(),
		tagStore:      NewTagStore(),
		workspaceRepo: NewWorkspaceRepo(),
	}
}

// Accessor methods for each store

func (d Database) PromptRepo() *PromptRepo {
	return d.promptRepo
}

func (d Database) VersionStore() *VersionStore {
	return d.versionStore
}

func (d Database) TagStore() *TagStore {
	return d.tagStore
}

func (d Database) WorkspaceRepo() *WorkspaceRepo {
	return d.workspaceRepo
}

// Migrate runs the schema migration on the pool's database.
func (p *Pool) Migrate() error {
	return Migrate(p.db)
}

// Migrate creates or updates the schema for every model this core relies on.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Workspace{},
		&models.WorkspaceMember{},
		&models.Prompt{},
		&models.PromptVersion{},
		&models.PromptTag{},
	)
}
