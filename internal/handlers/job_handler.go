package handlers

import (
	"net/http"

	"jobboard_backend/internal/services"
	"jobboard_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	*BaseHandler
	jobService services.JobService
}

func NewJobHandler(base *BaseHandler, jobService services.JobService) *JobHandler {
	return &JobHandler{BaseHandler: base, jobService: jobService}
}

// ListJobs handles GET /jobs. Newest first.
func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.jobService.ListJobs()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// GetJob handles GET /jobs/:jobId.
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.jobService.GetJob(c.Param("jobId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// CreateJob handles POST /jobs.
func (h *JobHandler) CreateJob(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	job, err := h.jobService.CreateJob(userID, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

// UpdateJob handles PUT /jobs/:jobId. Scalar fields and the requirement
// set are replaced wholesale.
func (h *JobHandler) UpdateJob(c *gin.Context) {
	if _, ok := h.RequireUserID(c); !ok {
		return
	}

	var req dto.UpdateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	job, err := h.jobService.UpdateJob(c.Param("jobId"), &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// DeleteJob handles DELETE /jobs/:jobId.
func (h *JobHandler) DeleteJob(c *gin.Context) {
	if _, ok := h.RequireUserID(c); !ok {
		return
	}

	if err := h.jobService.DeleteJob(c.Param("jobId")); err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job deleted"})
}
