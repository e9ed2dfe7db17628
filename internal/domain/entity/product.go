package entity

import (
	"encoding/json"
	"math"
	"time"

	"github.com/arjunms/maninventory-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents an item in the shop's inventory. Stock is never allowed
// to go negative: settlement decrements it only through a conditional update.
type Product struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Description  *string        `gorm:"type:text" json:"description,omitempty"`
	Stock        int            `gorm:"not null;default:0" json:"stock"`
	Unit         string         `gorm:"size:50;not null;default:'pcs'" json:"unit"`
	Price        int64          `gorm:"not null;default:0" json:"-"` // Stored in paise/cents
	MinimumStock int            `gorm:"not null;default:0" json:"minimum_stock"`
	Category     *string        `gorm:"size:255" json:"category,omitempty"`
	ImageURL     *string        `gorm:"size:512" json:"image_url,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// GetPriceDecimal returns the unit price as a decimal (for display)
func (p *Product) GetPriceDecimal() float64 {
	return float64(p.Price) / 100
}

// SetPriceFromDecimal sets the unit price from a decimal value
func (p *Product) SetPriceFromDecimal(price float64) {
	p.Price = int64(math.Round(price * 100))
}

// StockStatus classifies the current stock against the minimum threshold
func (p *Product) StockStatus() enum.StockStatus {
	return enum.StockStatusFor(p.Stock, p.MinimumStock)
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		Alias
		Price       float64          `json:"price"`
		StockStatus enum.StockStatus `json:"stock_status"`
	}{
		Alias:       Alias(p),
		Price:       p.GetPriceDecimal(),
		StockStatus: p.StockStatus(),
	})
}
