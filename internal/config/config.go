package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all environment-driven settings for the API and worker.
type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	RunLocal bool   `envconfig:"RUN_LOCAL" default:"false"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	ItemsTable       string `envconfig:"ITEMS_TABLE" default:"items"`
	OrdersTable      string `envconfig:"ORDERS_TABLE" default:"orders"`
	InquiriesTable   string `envconfig:"INQUIRIES_TABLE" default:"inquiries"`
	SuppliersTable   string `envconfig:"SUPPLIERS_TABLE" default:"suppliers"`
	FeedbackTable    string `envconfig:"FEEDBACK_TABLE" default:"feedback"`
	IdempotencyTable string `envconfig:"IDEMPOTENCY_TABLE" default:"idempotency"`

	NotificationQueueURL string        `envconfig:"NOTIFICATION_QUEUE_URL"`
	SenderEmail          string        `envconfig:"SENDER_EMAIL" default:"no-reply@commerceflow.dev"`
	SupportEmail         string        `envconfig:"SUPPORT_EMAIL" default:"support@commerceflow.dev"`
	TokenSecret          string        `envconfig:"TOKEN_SECRET"`
	IdempotencyTTL       time.Duration `envconfig:"IDEMPOTENCY_TTL" default:"48h"`
}

// Load reads .env when present, then populates Config from the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}
	return &cfg, nil
}
