package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShopSettings holds the per-shop configuration. UpiID doubles as the gate
// for the UPI payment method: settlement refuses UPI when it is empty.
type ShopSettings struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	ShopName  string         `gorm:"size:255;not null" json:"shop_name"`
	Location  string         `gorm:"size:255" json:"location"`
	UpiID     string         `gorm:"size:255" json:"upi_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating new settings
func (s *ShopSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ShopSettings model
func (ShopSettings) TableName() string {
	return "shop_settings"
}

// HasUpi reports whether a receiving UPI ID is configured
func (s *ShopSettings) HasUpi() bool {
	return s != nil && s.UpiID != ""
}
