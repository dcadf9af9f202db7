package handlers

import (
	"jobboard_backend/internal/services"
	"jobboard_backend/internal/validator"
)

// AppHandlers bundles every HTTP handler for route registration.
type AppHandlers struct {
	Auth         *AuthHandler
	Jobs         *JobHandler
	Requirements *RequirementHandler
	Applications *ApplicationHandler
}

func NewAppHandlers(container *services.ServiceContainer) *AppHandlers {
	base := NewBaseHandler(validator.New())

	return &AppHandlers{
		Auth:         NewAuthHandler(base, container.Auth),
		Jobs:         NewJobHandler(base, container.Jobs),
		Requirements: NewRequirementHandler(base, container.Requirements),
		Applications: NewApplicationHandler(base, container.Applications),
	}
}
