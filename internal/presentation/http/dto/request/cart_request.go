package request

import "github.com/google/uuid"

// AddToCartRequest represents adding a product to the cart
type AddToCartRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItemRequest sets a cart line's quantity. Zero removes the line.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}
