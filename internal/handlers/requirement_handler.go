package handlers

import (
	"net/http"

	"jobboard_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type RequirementHandler struct {
	*BaseHandler
	requirementService services.RequirementService
}

func NewRequirementHandler(base *BaseHandler, requirementService services.RequirementService) *RequirementHandler {
	return &RequirementHandler{BaseHandler: base, requirementService: requirementService}
}

// ListRequirements handles GET /requirements. The catalog is shared across
// jobs; the form uses it for suggestions.
func (h *RequirementHandler) ListRequirements(c *gin.Context) {
	requirements, err := h.requirementService.ListRequirements()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requirements": requirements})
}
