package service

import (
	"context"
	"strings"
	"time"

	"github.com/arjunms/maninventory-api/internal/domain/entity"
	"github.com/arjunms/maninventory-api/internal/domain/repository"
	"github.com/arjunms/maninventory-api/pkg/apperror"
	"github.com/arjunms/maninventory-api/pkg/pagination"
	"github.com/google/uuid"
)

// ProductService handles catalog operations
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	UserID       uuid.UUID
	Name         string
	Description  *string
	Stock        int
	Unit         string
	Price        float64
	MinimumStock int
	Category     *string
	ImageURL     *string
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperror.NewBadRequestError("Product name is required")
	}
	if input.Stock < 0 {
		return nil, apperror.NewBadRequestError("Stock cannot be negative")
	}

	unit := input.Unit
	if unit == "" {
		unit = "pcs"
	}

	product := &entity.Product{
		UserID:       input.UserID,
		Name:         strings.TrimSpace(input.Name),
		Description:  input.Description,
		Stock:        input.Stock,
		Unit:         unit,
		MinimumStock: input.MinimumStock,
		Category:     input.Category,
		ImageURL:     input.ImageURL,
	}
	product.SetPriceFromDecimal(input.Price)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// GetProduct retrieves a product owned by the user
func (s *ProductService) GetProduct(ctx context.Context, userID, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.UserID != userID {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, userID uuid.UUID, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// ListProductsWithCursor lists products with cursor-based pagination
func (s *ProductService) ListProductsWithCursor(ctx context.Context, userID uuid.UUID, params *repository.ProductCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Product], error) {
	products, err := s.productRepo.ListWithCursor(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	getID := func(p entity.Product) string { return p.ID.String() }
	getCreatedAt := func(p entity.Product) time.Time { return p.CreatedAt }

	var cursorPag *pagination.CursorPagination
	var items []entity.Product
	if params.Cursor.Cursor != "" && params.Cursor.Direction == pagination.CursorDirectionPrev {
		cursorPag, items = pagination.NewCursorPaginationPrev(products, params.Cursor.Limit, getID, getCreatedAt)
	} else {
		cursorPag, items = pagination.NewCursorPagination(products, params.Cursor.Limit, getID, getCreatedAt)
		cursorPag.HasPrev = params.Cursor.Cursor != ""
	}

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	UserID       uuid.UUID
	ProductID    uuid.UUID
	Name         *string
	Description  *string
	Stock        *int
	Unit         *string
	Price        *float64
	MinimumStock *int
	Category     *string
	ImageURL     *string
}

// UpdateProduct updates a product
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.UserID != input.UserID {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, apperror.NewBadRequestError("Product name is required")
		}
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, apperror.NewBadRequestError("Stock cannot be negative")
		}
		product.Stock = *input.Stock
	}
	if input.Unit != nil && *input.Unit != "" {
		product.Unit = *input.Unit
	}
	if input.Price != nil {
		product.SetPriceFromDecimal(*input.Price)
	}
	if input.MinimumStock != nil {
		product.MinimumStock = *input.MinimumStock
	}
	if input.Category != nil {
		product.Category = input.Category
	}
	if input.ImageURL != nil {
		product.ImageURL = input.ImageURL
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct deletes a product owned by the user
func (s *ProductService) DeleteProduct(ctx context.Context, userID, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil || product.UserID != userID {
		return apperror.NewNotFoundError("Product")
	}

	return s.productRepo.Delete(ctx, product.ID)
}

// GetLowStockProducts returns products at or below their minimum stock
func (s *ProductService) GetLowStockProducts(ctx context.Context, userID uuid.UUID) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx, userID)
}

// RestockProduct adds stock to a product
func (s *ProductService) RestockProduct(ctx context.Context, userID, id uuid.UUID, amount int) (*entity.Product, error) {
	if amount < 1 {
		return nil, apperror.NewBadRequestError("Restock amount must be at least 1")
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.UserID != userID {
		return nil, apperror.NewNotFoundError("Product")
	}

	if err := s.productRepo.IncrementStock(ctx, id, amount); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, id)
}

// ImportProductRow represents a single product row extracted from a stock file
type ImportProductRow struct {
	Name         string  `json:"name"`
	Stock        int     `json:"stock"`
	Unit         string  `json:"unit"`
	Price        float64 `json:"price"`
	MinimumStock int     `json:"minimum_stock"`
	Category     string  `json:"category"`
}

// ImportResult contains the result of a bulk import operation
type ImportResult struct {
	TotalRows  int              `json:"total_rows"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
	Errors     []ImportRowError `json:"errors,omitempty"`
}

// ImportRowError describes an error for a specific row during import
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportProducts validates and bulk-creates products from extracted rows
func (s *ProductService) ImportProducts(ctx context.Context, userID uuid.UUID, rows []ImportProductRow) (*ImportResult, error) {
	result := &ImportResult{TotalRows: len(rows)}
	var rowErrors []ImportRowError
	var validProducts []entity.Product

	for i, row := range rows {
		rowNum := i + 1

		if strings.TrimSpace(row.Name) == "" {
			rowErrors = append(rowErrors, ImportRowError{Row: rowNum, Field: "name", Message: "Name is required"})
			continue
		}
		if row.Stock < 0 {
			rowErrors = append(rowErrors, ImportRowError{Row: rowNum, Field: "stock", Message: "Stock cannot be negative"})
			continue
		}
		if row.Price < 0 {
			rowErrors = append(rowErrors, ImportRowError{Row: rowNum, Field: "price", Message: "Price cannot be negative"})
			continue
		}

		unit := strings.TrimSpace(row.Unit)
		if unit == "" {
			unit = "pcs"
		}

		product := entity.Product{
			UserID:       userID,
			Name:         strings.TrimSpace(row.Name),
			Stock:        row.Stock,
			Unit:         unit,
			MinimumStock: row.MinimumStock,
		}
		product.SetPriceFromDecimal(row.Price)

		if category := strings.TrimSpace(row.Category); category != "" {
			product.Category = &category
		}

		validProducts = append(validProducts, product)
	}

	if len(validProducts) > 0 {
		if err := s.productRepo.CreateBatch(ctx, validProducts); err != nil {
			return nil, apperror.NewAppError(500, "Failed to import products: "+err.Error())
		}
	}

	result.Successful = len(validProducts)
	result.Failed = len(rowErrors)
	result.Errors = rowErrors

	return result, nil
}
