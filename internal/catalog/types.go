package catalog

import "time"

// Item categories
const (
	CategoryElectronics = "Electronics"
	CategoryClothing    = "Clothing"
	CategoryHome        = "Home"
	CategoryGrocery     = "Grocery"
	CategoryOther       = "Other"
)

// Item represents a purchasable catalog entry stored in the items table.
// Count is the remaining stock; it is only ever decremented by order creation.
type Item struct {
	ItemID      string    `dynamodbav:"item_id" json:"item_id"` // PK
	Name        string    `dynamodbav:"name" json:"name"`
	Price       float64   `dynamodbav:"price" json:"price"`
	Count       int       `dynamodbav:"count" json:"count"`
	Category    string    `dynamodbav:"category,omitempty" json:"category,omitempty"`
	Description string    `dynamodbav:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time `dynamodbav:"created_at" json:"created_at"`
	UpdatedAt   time.Time `dynamodbav:"updated_at" json:"updated_at"`
}
