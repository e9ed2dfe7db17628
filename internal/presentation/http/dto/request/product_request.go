package request

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name         string  `json:"name" binding:"required,min=1,max=255"`
	Description  *string `json:"description"`
	Stock        int     `json:"stock" binding:"min=0"`
	Unit         string  `json:"unit" binding:"omitempty,max=50"`
	Price        float64 `json:"price" binding:"min=0"`
	MinimumStock int     `json:"minimum_stock" binding:"min=0"`
	Category     *string `json:"category"`
	ImageURL     *string `json:"image_url"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Name         *string  `json:"name" binding:"omitempty,min=1,max=255"`
	Description  *string  `json:"description"`
	Stock        *int     `json:"stock" binding:"omitempty,min=0"`
	Unit         *string  `json:"unit" binding:"omitempty,max=50"`
	Price        *float64 `json:"price" binding:"omitempty,min=0"`
	MinimumStock *int     `json:"minimum_stock" binding:"omitempty,min=0"`
	Category     *string  `json:"category"`
	ImageURL     *string  `json:"image_url"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search    string `form:"search"`
	Category  string `form:"category"`
	LowStock  bool   `form:"low_stock"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
	Cursor    string `form:"cursor"`
	Limit     int    `form:"limit"` // For cursor-based pagination
}

// RestockProductRequest represents a restock request
type RestockProductRequest struct {
	Amount int `json:"amount" binding:"required,min=1"`
}

// ImportProductsRequest represents a bulk import of extracted product rows
type ImportProductsRequest struct {
	Products []ImportProductRowRequest `json:"products" binding:"required,min=1,dive"`
}

// ImportProductRowRequest is one row in a bulk import
type ImportProductRowRequest struct {
	Name         string  `json:"name" binding:"required"`
	Stock        int     `json:"stock" binding:"min=0"`
	Unit         string  `json:"unit"`
	Price        float64 `json:"price" binding:"min=0"`
	MinimumStock int     `json:"minimum_stock" binding:"min=0"`
	Category     string  `json:"category"`
}
