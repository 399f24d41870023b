// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"findteam/models"

	"gorm.io/gorm"
)

// RunMigrations creates or updates the schema for all application models.
// Exported with an explicit *gorm.DB so tests can migrate their own DB.
func RunMigrations(db *gorm.DB) {
	log.Println("Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.TeamTags{},
		&models.Membership{},
		&models.Application{},
		&models.Profile{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	createIndexes(db)

	log.Println("Migrations completed")
}

func createIndexes(db *gorm.DB) {
	db.Exec("CREATE INDEX IF NOT EXISTS idx_teams_owner ON teams(owner_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_team_members_team ON team_members(team_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_applications_team ON applications_to_join(team_id)")
}
