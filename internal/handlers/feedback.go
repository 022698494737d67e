package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/commerceflow/backend/internal/auth"
	"github.com/commerceflow/backend/internal/feedback"
	"github.com/commerceflow/backend/internal/validation"
)

// FeedbackHandler exposes customer feedback.
type FeedbackHandler struct {
	svc *feedback.Service
	v   *validatorv10.Validate
	log *logrus.Logger
}

// Create handles POST /feedback for the authenticated caller.
func (h *FeedbackHandler) Create(c *gin.Context) {
	ident, _ := auth.IdentityFrom(c)

	var req validation.CreateFeedbackRequest
	if err := validation.BindAndValidate(c, &req, h.v); err != nil {
		return
	}

	f, err := h.svc.Create(c.Request.Context(), ident, req.Name, req.Rating, req.Comment)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

// List handles GET /feedback (admin).
func (h *FeedbackHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedback": list})
}

// Delete handles DELETE /feedback/:id for an admin or the author.
func (h *FeedbackHandler) Delete(c *gin.Context) {
	ident, _ := auth.IdentityFrom(c)

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), ident); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
