package orders

import "time"

// Payment statuses. Payment is marked Completed at creation time; there is no
// separate gateway confirmation step.
const (
	PaymentPending   = "Pending"
	PaymentCompleted = "Completed"
	PaymentFailed    = "Failed"
)

// Approval statuses. Approved and Rejected are terminal by intent, but
// approve/reject overwrite unconditionally, so repeated calls do not error.
const (
	ApprovalPending  = "Pending"
	ApprovalApproved = "Approved"
	ApprovalRejected = "Rejected"
)

// ListLimit caps the order listing endpoint.
const ListLimit = 50

// Line is an order line with the catalog price snapshotted at lookup time.
type Line struct {
	ItemID   string  `dynamodbav:"item_id" json:"item_id"`
	Quantity int     `dynamodbav:"quantity" json:"quantity"`
	Price    float64 `dynamodbav:"price" json:"price"`
}

// Order represents the item stored in the orders table.
type Order struct {
	OrderID        string    `dynamodbav:"order_id" json:"order_id"` // PK
	UserID         string    `dynamodbav:"user_id" json:"user_id"`
	UserEmail      string    `dynamodbav:"user_email,omitempty" json:"user_email,omitempty"`
	Items          []Line    `dynamodbav:"items" json:"items"`
	TotalAmount    float64   `dynamodbav:"total_amount" json:"total_amount"`
	PaymentStatus  string    `dynamodbav:"payment_status" json:"payment_status"`
	ApprovalStatus string    `dynamodbav:"approval_status" json:"approval_status"`
	CardLastFour   string    `dynamodbav:"card_last_four,omitempty" json:"card_last_four,omitempty"`
	PaymentDate    time.Time `dynamodbav:"payment_date" json:"payment_date"`
	CreatedAt      time.Time `dynamodbav:"created_at" json:"created_at"`
	UpdatedAt      time.Time `dynamodbav:"updated_at" json:"updated_at"`
}
