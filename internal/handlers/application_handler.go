package handlers

import (
	"net/http"

	"jobboard_backend/internal/middleware"
	"jobboard_backend/internal/services"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{BaseHandler: base, applicationService: applicationService}
}

// SubmitApplication handles POST /jobs/:jobId/applications. The route sits
// behind optional auth: logged-in candidates get their user ID attached,
// anonymous applicants apply with just the form fields. The resume comes as
// the multipart "cv" file ("resume" is accepted too).
func (h *ApplicationHandler) SubmitApplication(c *gin.Context) {
	var req dto.SubmitApplicationRequest
	if !h.BindAndValidateForm(c, &req) {
		return
	}

	var resume *dto.ResumeUpload
	fileHeader, err := c.FormFile("cv")
	if err != nil {
		fileHeader, err = c.FormFile("resume")
	}
	if err == nil && fileHeader != nil {
		file, openErr := fileHeader.Open()
		if openErr != nil {
			h.HandleError(c, apperrors.InternalError(openErr))
			return
		}
		defer file.Close()

		resume = &dto.ResumeUpload{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Size:        fileHeader.Size,
			Content:     file,
		}
	}

	var candidateID *string
	if userID := middleware.GetUserID(c); userID != "" {
		candidateID = &userID
	}

	application, err := h.applicationService.SubmitApplication(
		c.Request.Context(), c.Param("jobId"), candidateID, &req, resume)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, application)
}

// CheckApplication handles GET /jobs/:jobId/applications/check. It tells
// the authenticated candidate whether they already applied, so the client
// can disable the form up front.
func (h *ApplicationHandler) CheckApplication(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	applied, err := h.applicationService.HasAlreadyApplied(c.Param("jobId"), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"has_applied": applied})
}

// ListJobApplications handles GET /jobs/:jobId/applications.
func (h *ApplicationHandler) ListJobApplications(c *gin.Context) {
	if _, ok := h.RequireUserID(c); !ok {
		return
	}

	applications, err := h.applicationService.ListByJob(c.Param("jobId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": applications})
}

// ListAllApplications handles GET /applications (recruiter dashboard).
func (h *ApplicationHandler) ListAllApplications(c *gin.Context) {
	if _, ok := h.RequireUserID(c); !ok {
		return
	}

	applications, err := h.applicationService.ListAll()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": applications})
}

// ListMyApplications handles GET /applications/my.
func (h *ApplicationHandler) ListMyApplications(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	applications, err := h.applicationService.ListByCandidate(userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": applications})
}

// UpdateApplicationStatus handles PUT /applications/:applicationId/status.
func (h *ApplicationHandler) UpdateApplicationStatus(c *gin.Context) {
	if _, ok := h.RequireUserID(c); !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	id := c.Param("applicationId")
	if err := h.applicationService.UpdateStatus(id, req.Status); err != nil {
		h.HandleError(c, err)
		return
	}

	application, err := h.applicationService.GetApplication(id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, application)
}
