package models

import (
	"time"
)

// CartSchemaVersion is written into every persisted cart record so later
// format changes can be detected instead of misparsed.
const CartSchemaVersion = 1

// LineItem is one product entry in a cart. ProductID is the opaque catalog
// identifier; no two line items in the same cart share one.
type LineItem struct {
	ProductID   string  `json:"product_id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
}

func (i LineItem) LineTotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// Cart holds the line items of one shopping session, in insertion order.
type Cart struct {
	SchemaVersion int        `json:"schema_version"`
	Items         []LineItem `json:"items"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func NewCart() *Cart {
	return &Cart{SchemaVersion: CartSchemaVersion, Items: []LineItem{}}
}

type AddItemRequest struct {
	ProductID   string  `json:"product_id" validate:"required"`
	Name        string  `json:"name"       validate:"required"`
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
}

// UpdateQuantityRequest carries the new quantity as a pointer so that an
// explicit zero survives validation and reaches the clamp in the service.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}
