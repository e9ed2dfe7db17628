package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/arjunms/maninventory-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionItem is one line of a sale, frozen at settlement time. Name and
// price are copied from the product so history survives later catalog edits
// or deletions.
type TransactionItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Unit      string    `json:"unit"`
	UnitPrice int64     `json:"unit_price"` // cents
	Total     int64     `json:"total"`      // cents
}

// TransactionItems is the JSON-encoded line item snapshot stored on a
// transaction row.
type TransactionItems []TransactionItem

// Value implements driver.Valuer so gorm stores the snapshot as JSON
func (items TransactionItems) Value() (driver.Value, error) {
	return json.Marshal(items)
}

// Scan implements sql.Scanner
func (items *TransactionItems) Scan(value interface{}) error {
	if value == nil {
		*items = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, items)
	case string:
		return json.Unmarshal([]byte(v), items)
	default:
		return errors.New("unsupported type for transaction items")
	}
}

// Transaction is one completed sale in the append-only ledger. Rows are
// created exactly once per successful settlement and never updated.
type Transaction struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	SettlementID  string             `gorm:"size:100;uniqueIndex;not null" json:"settlement_id"`
	ReceiptNo     string             `gorm:"size:100;not null" json:"receipt_no"`
	Items         TransactionItems   `gorm:"type:jsonb;not null" json:"items"`
	SubTotal      int64              `gorm:"not null" json:"-"` // cents
	Tax           int64              `gorm:"not null" json:"-"` // cents
	Total         int64              `gorm:"not null" json:"-"` // cents
	PaymentMethod enum.PaymentMethod `gorm:"size:20;not null" json:"payment_method"`
	PaymentStatus enum.PaymentStatus `gorm:"size:20;not null" json:"payment_status"`
	CreatedAt     time.Time          `gorm:"index" json:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// GetTotalDecimal returns the total as a decimal
func (t *Transaction) GetTotalDecimal() float64 {
	return float64(t.Total) / 100
}

// GetSubTotalDecimal returns the subtotal as a decimal
func (t *Transaction) GetSubTotalDecimal() float64 {
	return float64(t.SubTotal) / 100
}

// GetTaxDecimal returns the tax amount as a decimal
func (t *Transaction) GetTaxDecimal() float64 {
	return float64(t.Tax) / 100
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (t Transaction) MarshalJSON() ([]byte, error) {
	type Alias Transaction
	return json.Marshal(&struct {
		Alias
		SubTotal float64 `json:"sub_total"`
		Tax      float64 `json:"tax"`
		Total    float64 `json:"total"`
	}{
		Alias:    Alias(t),
		SubTotal: t.GetSubTotalDecimal(),
		Tax:      t.GetTaxDecimal(),
		Total:    t.GetTotalDecimal(),
	})
}
