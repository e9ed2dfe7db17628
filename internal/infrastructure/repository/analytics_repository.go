package repository

import (
	"context"
	"sort"
	"time"

	"github.com/arjunms/maninventory-api/internal/domain/entity"
	domainRepo "github.com/arjunms/maninventory-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetRevenueBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, error) {
	var revenue int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total), 0)
		FROM transactions
		WHERE user_id = ? AND created_at >= ? AND created_at < ?
	`, userID, from, to).Scan(&revenue).Error

	return revenue, err
}

func (r *analyticsRepository) GetTransactionCountBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Transaction{}).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, from, to).
		Count(&count).Error

	return count, err
}

func (r *analyticsRepository) GetDailySales(ctx context.Context, userID uuid.UUID, days int) ([]domainRepo.DailySalesResult, error) {
	results := make([]domainRepo.DailySalesResult, 0, days)
	now := time.Now()

	// Generate dates for the last N days and get sales for each
	for i := days - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)
		startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		endOfDay := startOfDay.Add(24 * time.Hour)

		var row struct {
			Revenue int64
			Count   int
		}
		err := r.db.WithContext(ctx).Raw(`
			SELECT COALESCE(SUM(total), 0) as revenue, COUNT(*) as count
			FROM transactions
			WHERE user_id = ? AND created_at >= ? AND created_at < ?
		`, userID, startOfDay, endOfDay).Scan(&row).Error

		if err != nil {
			return nil, err
		}

		results = append(results, domainRepo.DailySalesResult{
			Date:             startOfDay,
			Revenue:          row.Revenue,
			TransactionCount: row.Count,
		})
	}

	return results, nil
}

// GetTopProducts aggregates the JSON item snapshots in Go rather than SQL.
// The snapshot is the source of truth for sold names and prices, and parsing
// it here keeps the query portable across postgres and sqlite.
func (r *analyticsRepository) GetTopProducts(ctx context.Context, userID uuid.UUID, from, to time.Time, limit int) ([]domainRepo.TopProductResult, error) {
	var txns []entity.Transaction
	err := r.db.WithContext(ctx).
		Select("items").
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, from, to).
		Find(&txns).Error
	if err != nil {
		return nil, err
	}

	byProduct := make(map[uuid.UUID]*domainRepo.TopProductResult)
	for _, txn := range txns {
		for _, item := range txn.Items {
			agg, ok := byProduct[item.ProductID]
			if !ok {
				agg = &domainRepo.TopProductResult{
					ProductID:   item.ProductID,
					ProductName: item.Name,
				}
				byProduct[item.ProductID] = agg
			}
			agg.QuantitySold += item.Quantity
			agg.Revenue += item.Total
		}
	}

	results := make([]domainRepo.TopProductResult, 0, len(byProduct))
	for _, agg := range byProduct {
		results = append(results, *agg)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Revenue > results[j].Revenue
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (r *analyticsRepository) GetSalesByPaymentMethod(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domainRepo.PaymentMethodResult, error) {
	var results []domainRepo.PaymentMethodResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			payment_method,
			COALESCE(SUM(total), 0) as revenue,
			COUNT(*) as transaction_count
		FROM transactions
		WHERE user_id = ? AND created_at >= ? AND created_at < ?
		GROUP BY payment_method
		ORDER BY revenue DESC
	`, userID, from, to).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}
