package inquiries

import "time"

// Inquiry categories
const (
	CategoryGeneral  = "General"
	CategoryProduct  = "Product"
	CategoryPricing  = "Pricing"
	CategoryShipping = "Shipping"
	CategoryOther    = "Other"
)

// Inquiry statuses. Resolved and Closed are the intended terminal states;
// the only automatic transition is to Pending Client Response when a
// customer-visible reply is posted.
const (
	StatusNew           = "New"
	StatusInProgress    = "In Progress"
	StatusPendingClient = "Pending Client Response"
	StatusResolved      = "Resolved"
	StatusClosed        = "Closed"
)

// ValidStatus reports whether s is one of the five inquiry statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusInProgress, StatusPendingClient, StatusResolved, StatusClosed:
		return true
	default:
		return false
	}
}

// ValidCategory reports whether c is a known inquiry category.
func ValidCategory(c string) bool {
	switch c {
	case CategoryGeneral, CategoryProduct, CategoryPricing, CategoryShipping, CategoryOther:
		return true
	default:
		return false
	}
}

// Response is one entry in an inquiry's append-only reply thread. Internal
// notes are visible to staff only and never notify the customer.
type Response struct {
	Message    string    `dynamodbav:"message" json:"message"`
	Responder  string    `dynamodbav:"responder" json:"responder"`
	IsInternal bool      `dynamodbav:"is_internal" json:"is_internal"`
	CreatedAt  time.Time `dynamodbav:"created_at" json:"created_at"`
}

// Inquiry represents the item stored in the inquiries table.
type Inquiry struct {
	InquiryID   string     `dynamodbav:"inquiry_id" json:"inquiry_id"` // PK
	Title       string     `dynamodbav:"title" json:"title"`
	Description string     `dynamodbav:"description" json:"description"`
	Category    string     `dynamodbav:"category" json:"category"`
	Name        string     `dynamodbav:"name" json:"name"`
	Email       string     `dynamodbav:"email" json:"email"`
	UserID      string     `dynamodbav:"user_id,omitempty" json:"user_id,omitempty"`
	Status      string     `dynamodbav:"status" json:"status"`
	Responses   []Response `dynamodbav:"responses,omitempty" json:"responses,omitempty"`
	AssignedTo  string     `dynamodbav:"assigned_to,omitempty" json:"assigned_to,omitempty"`
	CreatedAt   time.Time  `dynamodbav:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `dynamodbav:"updated_at" json:"updated_at"`
}
