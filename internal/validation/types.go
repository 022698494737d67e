package validation

// OrderLine is a single requested checkout line.
type OrderLine struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"` // must be >= 1
}

// CreateOrderRequest is the payload for POST /orders. Prices are never taken
// from the client; the catalog's current price is snapshotted server-side.
type CreateOrderRequest struct {
	Items        []OrderLine `json:"items" validate:"required,min=1,dive"` // at least one line
	CardLastFour string      `json:"card_last_four" validate:"required,len=4,numeric"`
}

// CreateItemRequest is the payload for POST /items.
type CreateItemRequest struct {
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Count       int     `json:"count" validate:"gte=0"`
	Category    string  `json:"category,omitempty"`
	Description string  `json:"description,omitempty"`
}

// CreateInquiryRequest is the payload for POST /inquiries.
type CreateInquiryRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
}

// UpdateInquiryStatusRequest is the payload for PUT /inquiries/:id/status.
// Membership in the status enum is checked by the lifecycle service.
type UpdateInquiryStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AddResponseRequest is the payload for POST /inquiries/:id/responses.
type AddResponseRequest struct {
	Message    string `json:"message" validate:"required"`
	Responder  string `json:"responder" validate:"required"`
	IsInternal bool   `json:"is_internal"`
}

// SupplierRequest is the payload for creating or updating a supplier.
type SupplierRequest struct {
	Name    string   `json:"name" validate:"required"`
	Email   string   `json:"email" validate:"required,email"`
	Phone   string   `json:"phone,omitempty"`
	Address string   `json:"address,omitempty"`
	Items   []string `json:"items,omitempty"`
}

// CreateFeedbackRequest is the payload for POST /feedback.
type CreateFeedbackRequest struct {
	Name    string `json:"name,omitempty"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty"`
}
