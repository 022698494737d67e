package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/commerceflow/backend/internal/auth"
	"github.com/commerceflow/backend/internal/aws"
	"github.com/commerceflow/backend/internal/catalog"
	"github.com/commerceflow/backend/internal/config"
	"github.com/commerceflow/backend/internal/feedback"
	"github.com/commerceflow/backend/internal/idempotency"
	"github.com/commerceflow/backend/internal/inquiries"
	"github.com/commerceflow/backend/internal/notify"
	"github.com/commerceflow/backend/internal/orders"
	"github.com/commerceflow/backend/internal/suppliers"
	"github.com/commerceflow/backend/internal/validation"
)

// Config groups dependencies for the route handlers.
type Config struct {
	DynamoDBClient   aws.DynamoDBAPI
	SQSClient        aws.SQSAPI
	CloudWatchClient aws.CloudWatchAPI
	App              *config.Config
	Log              *logrus.Logger
}

// RegisterRoutes builds stores, services, and handlers, and mounts every
// route group with its access guard.
func RegisterRoutes(r *gin.Engine, cfg Config) {
	v := validation.New()
	resolver := auth.NewResolver(cfg.App.TokenSecret)

	var metrics *aws.Metrics
	if cfg.CloudWatchClient != nil {
		metrics = aws.NewMetrics(cfg.CloudWatchClient, "CommerceFlow/API")
	}

	dispatcher := notify.NewDispatcher(cfg.SQSClient, cfg.App.NotificationQueueURL)

	catalogStore := catalog.NewStore(cfg.DynamoDBClient, cfg.App.ItemsTable)
	orderStore := orders.NewStore(cfg.DynamoDBClient, cfg.App.OrdersTable)
	inquiryStore := inquiries.NewStore(cfg.DynamoDBClient, cfg.App.InquiriesTable)
	supplierStore := suppliers.NewStore(cfg.DynamoDBClient, cfg.App.SuppliersTable)
	feedbackStore := feedback.NewStore(cfg.DynamoDBClient, cfg.App.FeedbackTable)
	idempStore := idempotency.NewStore(cfg.DynamoDBClient, cfg.App.IdempotencyTable, cfg.App.IdempotencyTTL)

	orderSvc := orders.NewService(orderStore, catalogStore, idempStore, cfg.App.IdempotencyTable, dispatcher, cfg.Log)
	inquirySvc := inquiries.NewService(inquiryStore, dispatcher, cfg.Log)
	supplierSvc := suppliers.NewService(supplierStore)
	feedbackSvc := feedback.NewService(feedbackStore)

	ordersH := &OrdersHandler{svc: orderSvc, v: v, log: cfg.Log, metrics: metrics}
	catalogH := &CatalogHandler{store: catalogStore, v: v, log: cfg.Log}
	inquiriesH := &InquiriesHandler{svc: inquirySvc, v: v, log: cfg.Log}
	suppliersH := &SuppliersHandler{svc: supplierSvc, v: v, log: cfg.Log}
	feedbackH := &FeedbackHandler{svc: feedbackSvc, v: v, log: cfg.Log}

	r.Use(requestLogger(cfg.Log))

	authed := r.Group("", auth.Middleware(resolver, cfg.Log))
	admin := r.Group("", auth.Middleware(resolver, cfg.Log), auth.RequireAdmin())

	// catalog: public reads, admin writes
	r.GET("/items", catalogH.List)
	r.GET("/items/:id", catalogH.Get)
	admin.POST("/items", catalogH.Create)
	admin.PUT("/items/:id", catalogH.Update)
	admin.DELETE("/items/:id", catalogH.Delete)

	// orders
	authed.POST("/orders", ordersH.Create)
	authed.GET("/orders", ordersH.List)
	authed.GET("/orders/:id", ordersH.Get)
	admin.GET("/orders/pending", ordersH.ListPending)
	admin.POST("/orders/:id/approve", ordersH.Approve)
	admin.POST("/orders/:id/reject", ordersH.Reject)

	// inquiries: public submission (identity attached when present)
	r.POST("/inquiries", auth.Optional(resolver), inquiriesH.Create)
	authed.GET("/inquiries/my", inquiriesH.ListMine)
	authed.DELETE("/inquiries/:id", inquiriesH.Delete)
	admin.GET("/inquiries", inquiriesH.ListAll)
	admin.PUT("/inquiries/:id/status", inquiriesH.UpdateStatus)
	admin.POST("/inquiries/:id/responses", inquiriesH.AddResponse)

	// suppliers: admin-only
	admin.POST("/suppliers", suppliersH.Create)
	admin.GET("/suppliers", suppliersH.List)
	admin.GET("/suppliers/:id", suppliersH.Get)
	admin.PUT("/suppliers/:id", suppliersH.Update)
	admin.DELETE("/suppliers/:id", suppliersH.Delete)

	// feedback
	authed.POST("/feedback", feedbackH.Create)
	authed.DELETE("/feedback/:id", feedbackH.Delete)
	admin.GET("/feedback", feedbackH.List)
}

// requestLogger logs each request with method, path, status, and latency.
func requestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"remote_ip":  c.ClientIP(),
		})
		switch {
		case c.Writer.Status() >= 500:
			entry.Error("request completed with server error")
		case c.Writer.Status() >= 400:
			entry.Warn("request completed with client error")
		default:
			entry.Info("request completed")
		}
	}
}
