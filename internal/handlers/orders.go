package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/commerceflow/backend/internal/auth"
	"github.com/commerceflow/backend/internal/aws"
	"github.com/commerceflow/backend/internal/orders"
	"github.com/commerceflow/backend/internal/validation"
)

// OrdersHandler exposes the order lifecycle over HTTP.
type OrdersHandler struct {
	svc     *orders.Service
	v       *validatorv10.Validate
	log     *logrus.Logger
	metrics *aws.Metrics
}

// Create handles POST /orders. An optional Idempotency-Key header guards
// against duplicate checkout submissions; a replay returns the original
// order with a 200 instead of a 201.
func (h *OrdersHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	ident, _ := auth.IdentityFrom(c)

	var req validation.CreateOrderRequest
	if err := validation.BindAndValidate(c, &req, h.v); err != nil {
		// BindAndValidate already wrote a 400
		return
	}

	lines := make([]orders.LineRequest, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, orders.LineRequest{ItemID: it.ItemID, Quantity: it.Quantity})
	}

	o, created, err := h.svc.Create(ctx, ident, lines, req.CardLastFour, c.GetHeader("Idempotency-Key"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	if created && h.metrics != nil {
		if merr := h.metrics.Count(ctx, "OrdersCreated", 1); merr != nil {
			h.log.Warnf("emit OrdersCreated metric: %v", merr)
		}
	}

	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	c.Header("Location", "/orders/"+o.OrderID)
	c.JSON(status, o)
}

// List handles GET /orders. Admins may narrow with ?user_id=; everyone else
// only sees their own orders.
func (h *OrdersHandler) List(c *gin.Context) {
	ident, _ := auth.IdentityFrom(c)

	list, err := h.svc.List(c.Request.Context(), ident, c.Query("user_id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": list})
}

// ListPending handles GET /orders/pending (admin).
func (h *OrdersHandler) ListPending(c *gin.Context) {
	list, err := h.svc.ListPending(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": list})
}

// Get handles GET /orders/:id for an admin or the order's owner.
func (h *OrdersHandler) Get(c *gin.Context) {
	ident, _ := auth.IdentityFrom(c)

	o, err := h.svc.GetByID(c.Request.Context(), c.Param("id"), ident)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// Approve handles POST /orders/:id/approve (admin).
func (h *OrdersHandler) Approve(c *gin.Context) {
	o, err := h.svc.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// Reject handles POST /orders/:id/reject (admin).
func (h *OrdersHandler) Reject(c *gin.Context) {
	o, err := h.svc.Reject(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, o)
}
