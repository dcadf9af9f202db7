package services

import (
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/storage"

	"gorm.io/gorm"
)

// ServiceContainer bundles every service for handler wiring.
type ServiceContainer struct {
	Auth         AuthService
	Jobs         JobService
	Requirements RequirementService
	Applications *ApplicationServiceImpl
}

// NewServiceContainer builds the repository and service graph on top of
// the shared DB handle and storage backend.
func NewServiceContainer(db *gorm.DB, store storage.Storage) *ServiceContainer {
	userRepo := repositories.NewUserRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	requirementRepo := repositories.NewRequirementRepository(db)
	applicationRepo := repositories.NewApplicationRepository(db)

	requirementService := NewRequirementService(requirementRepo)

	return &ServiceContainer{
		Auth:         NewAuthService(userRepo),
		Jobs:         NewJobService(jobRepo, requirementService),
		Requirements: requirementService,
		Applications: NewApplicationService(applicationRepo, jobRepo, store),
	}
}
