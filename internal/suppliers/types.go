package suppliers

import "time"

// Supplier represents a stock supplier tracked by the admin side. Email is
// unique across suppliers; a duplicate fails with Conflict.
type Supplier struct {
	SupplierID string    `dynamodbav:"supplier_id" json:"supplier_id"` // PK
	Name       string    `dynamodbav:"name" json:"name"`
	Email      string    `dynamodbav:"email" json:"email"`
	Phone      string    `dynamodbav:"phone,omitempty" json:"phone,omitempty"`
	Address    string    `dynamodbav:"address,omitempty" json:"address,omitempty"`
	Items      []string  `dynamodbav:"items,omitempty" json:"items,omitempty"` // catalog item ids supplied
	CreatedAt  time.Time `dynamodbav:"created_at" json:"created_at"`
	UpdatedAt  time.Time `dynamodbav:"updated_at" json:"updated_at"`
}
