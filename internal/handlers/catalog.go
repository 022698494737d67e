package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/commerceflow/backend/internal/apperrors"
	"github.com/commerceflow/backend/internal/catalog"
	"github.com/commerceflow/backend/internal/validation"
)

// CatalogHandler exposes item management. Reads are public; writes are
// admin-only, enforced at the route.
type CatalogHandler struct {
	store *catalog.Store
	v     *validatorv10.Validate
	log   *logrus.Logger
}

// List handles GET /items.
func (h *CatalogHandler) List(c *gin.Context) {
	items, err := h.store.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Get handles GET /items/:id.
func (h *CatalogHandler) Get(c *gin.Context) {
	it, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if it == nil {
		respondError(c, h.log, apperrors.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, it)
}

// Create handles POST /items (admin).
func (h *CatalogHandler) Create(c *gin.Context) {
	var req validation.CreateItemRequest
	if err := validation.BindAndValidate(c, &req, h.v); err != nil {
		return
	}

	it := &catalog.Item{
		ItemID:      uuid.NewString(),
		Name:        req.Name,
		Price:       req.Price,
		Count:       req.Count,
		Category:    req.Category,
		Description: req.Description,
	}
	if err := h.store.Save(c.Request.Context(), it); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, it)
}

// Update handles PUT /items/:id (admin).
func (h *CatalogHandler) Update(c *gin.Context) {
	var req validation.CreateItemRequest
	if err := validation.BindAndValidate(c, &req, h.v); err != nil {
		return
	}

	ctx := c.Request.Context()
	it, err := h.store.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if it == nil {
		respondError(c, h.log, apperrors.ErrNotFound)
		return
	}

	it.Name = req.Name
	it.Price = req.Price
	it.Count = req.Count
	it.Category = req.Category
	it.Description = req.Description
	if err := h.store.Save(ctx, it); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

// Delete handles DELETE /items/:id (admin).
func (h *CatalogHandler) Delete(c *gin.Context) {
	found, err := h.store.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if !found {
		respondError(c, h.log, apperrors.ErrNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}
