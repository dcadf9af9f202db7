package database

import (
	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema. Order matters for foreign keys:
// users and profiles first, then jobs, then everything referencing them.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.RefreshToken{},
		&models.Job{},
		&models.Requirement{},
		&models.JobRequirement{},
		&models.Application{},
		&models.WebhookDelivery{},
	)
}
