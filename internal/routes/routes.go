package routes

import (
	"jobboard_backend/internal/handlers"
	"jobboard_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the API surface under /api/v1.
func RegisterRoutes(r *gin.Engine, h *handlers.AppHandlers) {
	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
		auth.POST("/logout", h.Auth.Logout)
	}

	jobs := api.Group("/jobs")
	{
		jobs.GET("", h.Jobs.ListJobs)
		jobs.GET("/:jobId", h.Jobs.GetJob)
		jobs.POST("", middleware.AuthMiddleware(), h.Jobs.CreateJob)
		jobs.PUT("/:jobId", middleware.AuthMiddleware(), h.Jobs.UpdateJob)
		jobs.DELETE("/:jobId", middleware.AuthMiddleware(), h.Jobs.DeleteJob)

		// Submission takes optional auth: anonymous applicants are allowed,
		// logged-in candidates get the duplicate guard.
		jobs.POST("/:jobId/applications", middleware.OptionalAuthMiddleware(), h.Applications.SubmitApplication)
		jobs.GET("/:jobId/applications", middleware.AuthMiddleware(), h.Applications.ListJobApplications)
		jobs.GET("/:jobId/applications/check", middleware.AuthMiddleware(), h.Applications.CheckApplication)
	}

	api.GET("/requirements", h.Requirements.ListRequirements)

	applications := api.Group("/applications", middleware.AuthMiddleware())
	{
		applications.GET("", h.Applications.ListAllApplications)
		applications.GET("/my", h.Applications.ListMyApplications)
		applications.PUT("/:applicationId/status", h.Applications.UpdateApplicationStatus)
	}
}
