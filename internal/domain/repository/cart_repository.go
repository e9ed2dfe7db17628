package repository

import (
	"context"

	"github.com/arjunms/maninventory-api/internal/domain/entity"
	"github.com/google/uuid"
)

// CartRepository defines the interface for working-cart data operations
type CartRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]entity.CartItem, error)
	GetByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*entity.CartItem, error)
	Create(ctx context.Context, item *entity.CartItem) error
	Update(ctx context.Context, item *entity.CartItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ClearByUserID removes every cart row for a user in one statement.
	ClearByUserID(ctx context.Context, userID uuid.UUID) error
}
