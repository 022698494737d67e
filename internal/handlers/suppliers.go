package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/commerceflow/backend/internal/suppliers"
	"github.com/commerceflow/backend/internal/validation"
)

// SuppliersHandler exposes supplier tracking. Every route is admin-only.
type SuppliersHandler struct {
	svc *suppliers.Service
	v   *validatorv10.Validate
	log *logrus.Logger
}

// Create handles POST /suppliers.
func (h *SuppliersHandler) Create(c *gin.Context) {
	var req validation.SupplierRequest
	if err := validation.BindAndValidate(c, &req, h.v); err != nil {
		return
	}

	sp, err := h.svc.Create(c.Request.Context(), suppliers.CreateParams{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Items:   req.Items,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, sp)
}

// List handles GET /suppliers.
func (h *SuppliersHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suppliers": list})
}

// Get handles GET /suppliers/:id.
func (h *SuppliersHandler) Get(c *gin.Context) {
	sp, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, sp)
}

// Update handles PUT /suppliers/:id.
func (h *SuppliersHandler) Update(c *gin.Context) {
	var req validation.SupplierRequest
	if err := validation.BindAndValidate(c, &req, h.v); err != nil {
		return
	}

	sp, err := h.svc.Update(c.Request.Context(), c.Param("id"), suppliers.CreateParams{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Items:   req.Items,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, sp)
}

// Delete handles DELETE /suppliers/:id.
func (h *SuppliersHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
