package models

import (
	"github.com/google/uuid"
)

// CartItem is one (user, product, quantity) line pending purchase.
// The store keeps at most one row per (UserID, ProductID) pair and
// never stores a zero-quantity line.
type CartItem struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Product   *Product  `json:"product,omitempty"`
}

// Adding an already-carted product increments its quantity.
type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"omitempty,min=1"`
}

// Quantity is an absolute value; 0 removes the line.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}
