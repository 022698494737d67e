package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/commerceflow/backend/internal/auth"
	"github.com/commerceflow/backend/internal/inquiries"
	"github.com/commerceflow/backend/internal/validation"
)

// InquiriesHandler exposes the support-ticket lifecycle over HTTP.
type InquiriesHandler struct {
	svc *inquiries.Service
	v   *validatorv10.Validate
	log *logrus.Logger
}

// Create handles POST /inquiries. Submission is public; when the caller
// presented a valid credential the inquiry is linked to their account.
func (h *InquiriesHandler) Create(c *gin.Context) {
	var req validation.CreateInquiryRequest
	if err := validation.BindAndValidate(c, &req, h.v); err != nil {
		return
	}

	var userID string
	if ident, ok := auth.IdentityFrom(c); ok {
		userID = ident.ID
	}

	in, err := h.svc.Create(c.Request.Context(), inquiries.CreateParams{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Name:        req.Name,
		Email:       req.Email,
		UserID:      userID,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, in)
}

// ListMine handles GET /inquiries/my for the authenticated caller.
func (h *InquiriesHandler) ListMine(c *gin.Context) {
	ident, _ := auth.IdentityFrom(c)

	list, err := h.svc.ListForUser(c.Request.Context(), ident.Email)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inquiries": list})
}

// ListAll handles GET /inquiries (admin).
func (h *InquiriesHandler) ListAll(c *gin.Context) {
	list, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inquiries": list})
}

// UpdateStatus handles PUT /inquiries/:id/status (admin).
func (h *InquiriesHandler) UpdateStatus(c *gin.Context) {
	var req validation.UpdateInquiryStatusRequest
	if err := validation.BindAndValidate(c, &req, h.v); err != nil {
		return
	}

	in, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, in)
}

// AddResponse handles POST /inquiries/:id/responses (admin).
func (h *InquiriesHandler) AddResponse(c *gin.Context) {
	var req validation.AddResponseRequest
	if err := validation.BindAndValidate(c, &req, h.v); err != nil {
		return
	}

	in, err := h.svc.AddResponse(c.Request.Context(), c.Param("id"), req.Message, req.Responder, req.IsInternal)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, in)
}

// Delete handles DELETE /inquiries/:id for an admin or the inquiry's owner.
func (h *InquiriesHandler) Delete(c *gin.Context) {
	ident, _ := auth.IdentityFrom(c)

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), ident); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
