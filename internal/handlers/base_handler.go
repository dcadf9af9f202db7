package handlers

import (
	"jobboard_backend/internal/middleware"
	"jobboard_backend/internal/validator"
	"jobboard_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// BaseHandler carries the pieces every handler needs: the shared validator
// and the error-rendering helpers.
type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{validator: v}
}

// BindAndValidateJSON binds the JSON body into req and runs struct
// validation. On failure the response is already written; callers just
// return.
func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}
	return h.validate(c, req)
}

// BindAndValidateForm binds multipart/urlencoded form fields into req.
func (h *BaseHandler) BindAndValidateForm(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBind(req); err != nil {
		h.HandleError(c, apperrors.NewBadRequestError("Invalid form data: "+err.Error()))
		return false
	}
	return h.validate(c, req)
}

func (h *BaseHandler) validate(c *gin.Context, req interface{}) bool {
	if err := h.validator.Validate(req); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			h.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			h.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// RequireUserID returns the authenticated user's ID or writes a 401.
func (h *BaseHandler) RequireUserID(c *gin.Context) (string, bool) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		h.HandleError(c, apperrors.NewUnauthorizedError("Authentication required"))
		return "", false
	}
	return userID, true
}

func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	apperrors.HandleError(c, err)
}
