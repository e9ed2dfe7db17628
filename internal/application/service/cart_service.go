package service

import (
	"context"

	"github.com/arjunms/maninventory-api/internal/domain/entity"
	"github.com/arjunms/maninventory-api/internal/domain/repository"
	"github.com/arjunms/maninventory-api/pkg/apperror"
	"github.com/google/uuid"
)

// CartService maintains the server-side shadow of a user's working bill.
// Stock checks here are advisory: the authoritative check is the conditional
// decrement at settlement.
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService creates a new cart service
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart returns the user's cart items with product details
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) ([]entity.CartItem, error) {
	return s.cartRepo.GetByUserID(ctx, userID)
}

// AddToCart inserts a product or increments its existing cart row
func (s *CartService) AddToCart(ctx context.Context, userID, productID uuid.UUID, quantity int) (*entity.CartItem, error) {
	if quantity < 1 {
		return nil, apperror.NewBadRequestError("Quantity must be at least 1")
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.UserID != userID {
		return nil, apperror.NewNotFoundError("Product")
	}

	existing, err := s.cartRepo.GetByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	queued := 0
	if existing != nil {
		queued = existing.Quantity
	}
	if queued+quantity > product.Stock {
		return nil, apperror.NewInsufficientStockError(product.Name, product.Stock, product.Unit)
	}

	if existing != nil {
		existing.Quantity += quantity
		if err := s.cartRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	item := &entity.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.cartRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// SetQuantity updates a cart row's quantity. Zero or negative removes it.
func (s *CartService) SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*entity.CartItem, error) {
	item, err := s.cartRepo.GetByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Cart item")
	}

	if quantity <= 0 {
		return nil, s.cartRepo.Delete(ctx, item.ID)
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product != nil && quantity > product.Stock {
		return nil, apperror.NewInsufficientStockError(product.Name, product.Stock, product.Unit)
	}

	item.Quantity = quantity
	if err := s.cartRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveFromCart deletes a cart row. No-op if absent.
func (s *CartService) RemoveFromCart(ctx context.Context, userID, productID uuid.UUID) error {
	item, err := s.cartRepo.GetByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return err
	}
	if item == nil {
		return nil
	}
	return s.cartRepo.Delete(ctx, item.ID)
}

// ClearCart removes every cart row for the user
func (s *CartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return s.cartRepo.ClearByUserID(ctx, userID)
}
