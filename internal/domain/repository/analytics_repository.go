package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TopProductResult represents a product's sales performance
type TopProductResult struct {
	ProductID    uuid.UUID
	ProductName  string
	QuantitySold int
	Revenue      int64 // cents
}

// DailySalesResult represents sales data for a single day
type DailySalesResult struct {
	Date             time.Time
	Revenue          int64 // cents
	TransactionCount int
}

// PaymentMethodResult represents revenue aggregated by payment method
type PaymentMethodResult struct {
	PaymentMethod    string
	Revenue          int64 // cents
	TransactionCount int
}

// AnalyticsRepository defines interface for analytics/aggregation queries
type AnalyticsRepository interface {
	// GetRevenueBetween returns total revenue over a time window
	GetRevenueBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, error)

	// GetTransactionCountBetween returns the number of sales over a time window
	GetTransactionCountBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, error)

	// GetDailySales returns daily sales data for the last N days
	GetDailySales(ctx context.Context, userID uuid.UUID, days int) ([]DailySalesResult, error)

	// GetTopProducts returns top selling products by revenue over a time window
	GetTopProducts(ctx context.Context, userID uuid.UUID, from, to time.Time, limit int) ([]TopProductResult, error)

	// GetSalesByPaymentMethod returns revenue split by payment method over a time window
	GetSalesByPaymentMethod(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]PaymentMethodResult, error)
}
