package request

import "github.com/google/uuid"

// CheckoutItemRequest is one line of a bill being settled
type CheckoutItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CheckoutRequest represents a bill settlement request. The idempotency
// token travels in the Idempotency-Key header, not the body.
type CheckoutRequest struct {
	Items         []CheckoutItemRequest `json:"items" binding:"required,min=1,dive"`
	PaymentMethod string                `json:"payment_method" binding:"required"`
}
