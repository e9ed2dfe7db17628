package service

import (
	"context"
	"time"

	"github.com/arjunms/maninventory-api/internal/domain/entity"
	"github.com/arjunms/maninventory-api/internal/domain/repository"
	"github.com/arjunms/maninventory-api/pkg/pagination"
	"github.com/google/uuid"
)

// DashboardService provides the shop overview statistics
type DashboardService struct {
	analyticsRepo   repository.AnalyticsRepository
	productRepo     repository.ProductRepository
	transactionRepo repository.TransactionRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	analyticsRepo repository.AnalyticsRepository,
	productRepo repository.ProductRepository,
	transactionRepo repository.TransactionRepository,
) *DashboardService {
	return &DashboardService{
		analyticsRepo:   analyticsRepo,
		productRepo:     productRepo,
		transactionRepo: transactionRepo,
	}
}

// DashboardStats represents the shop overview
type DashboardStats struct {
	TodayRevenue       float64              `json:"today_revenue"`
	TodayTransactions  int64                `json:"today_transactions"`
	MonthRevenue       float64              `json:"month_revenue"`
	TotalProducts      int64                `json:"total_products"`
	LowStockCount      int64                `json:"low_stock_count"`
	LowStockProducts   []entity.Product     `json:"low_stock_products"`
	RecentTransactions []entity.Transaction `json:"recent_transactions"`
	DailySalesData     []DailySalesPoint    `json:"daily_sales_data"`
}

// DailySalesPoint represents a daily sales data point
type DailySalesPoint struct {
	Date         string  `json:"date"`
	Revenue      float64 `json:"revenue"`
	Transactions int     `json:"transactions"`
}

// GetDashboardStats returns the shop overview statistics
func (s *DashboardService) GetDashboardStats(ctx context.Context, userID uuid.UUID) (*DashboardStats, error) {
	stats := &DashboardStats{}
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	todayRevenue, err := s.analyticsRepo.GetRevenueBetween(ctx, userID, startOfDay, endOfDay)
	if err != nil {
		return nil, err
	}
	stats.TodayRevenue = float64(todayRevenue) / 100

	todayCount, err := s.analyticsRepo.GetTransactionCountBetween(ctx, userID, startOfDay, endOfDay)
	if err != nil {
		return nil, err
	}
	stats.TodayTransactions = todayCount

	monthRevenue, err := s.analyticsRepo.GetRevenueBetween(ctx, userID, startOfMonth, endOfDay)
	if err != nil {
		return nil, err
	}
	stats.MonthRevenue = float64(monthRevenue) / 100

	// Product counts
	paginationParams := pagination.DefaultPagination()
	paginationParams.PerPage = 1 // We only need the count
	_, productCount, err := s.productRepo.List(ctx, userID, &repository.ProductFilterParams{
		Pagination: paginationParams,
	})
	if err != nil {
		return nil, err
	}
	stats.TotalProducts = productCount

	lowStock, err := s.productRepo.GetLowStock(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats.LowStockCount = int64(len(lowStock))
	stats.LowStockProducts = lowStock

	recent, err := s.transactionRepo.GetRecent(ctx, userID, 5)
	if err != nil {
		return nil, err
	}
	stats.RecentTransactions = recent

	daily, err := s.analyticsRepo.GetDailySales(ctx, userID, 7)
	if err != nil {
		return nil, err
	}
	stats.DailySalesData = make([]DailySalesPoint, 0, len(daily))
	for _, day := range daily {
		stats.DailySalesData = append(stats.DailySalesData, DailySalesPoint{
			Date:         day.Date.Format("Jan 02"),
			Revenue:      float64(day.Revenue) / 100,
			Transactions: day.TransactionCount,
		})
	}

	return stats, nil
}

// AnalyticsSummary aggregates sales over a period for the analytics screen
type AnalyticsSummary struct {
	PeriodDays       int                  `json:"period_days"`
	TotalRevenue     float64              `json:"total_revenue"`
	TransactionCount int64                `json:"transaction_count"`
	AverageSale      float64              `json:"average_sale"`
	TopProducts      []TopProductPoint    `json:"top_products"`
	PaymentMethods   []PaymentMethodPoint `json:"payment_methods"`
	DailySalesData   []DailySalesPoint    `json:"daily_sales_data"`
}

// TopProductPoint represents one product's sales performance
type TopProductPoint struct {
	ProductID    uuid.UUID `json:"product_id"`
	Name         string    `json:"name"`
	QuantitySold int       `json:"quantity_sold"`
	Revenue      float64   `json:"revenue"`
}

// PaymentMethodPoint represents revenue for one payment method
type PaymentMethodPoint struct {
	Method       string  `json:"method"`
	Revenue      float64 `json:"revenue"`
	Transactions int     `json:"transactions"`
}

// GetAnalyticsSummary aggregates sales for the last N days
func (s *DashboardService) GetAnalyticsSummary(ctx context.Context, userID uuid.UUID, days int) (*AnalyticsSummary, error) {
	if days < 1 {
		days = 7
	}
	if days > 365 {
		days = 365
	}

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -(days - 1))
	to := now.Add(time.Second)

	summary := &AnalyticsSummary{PeriodDays: days}

	revenue, err := s.analyticsRepo.GetRevenueBetween(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	summary.TotalRevenue = float64(revenue) / 100

	count, err := s.analyticsRepo.GetTransactionCountBetween(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	summary.TransactionCount = count
	if count > 0 {
		summary.AverageSale = summary.TotalRevenue / float64(count)
	}

	topProducts, err := s.analyticsRepo.GetTopProducts(ctx, userID, from, to, 5)
	if err != nil {
		return nil, err
	}
	summary.TopProducts = make([]TopProductPoint, 0, len(topProducts))
	for _, p := range topProducts {
		summary.TopProducts = append(summary.TopProducts, TopProductPoint{
			ProductID:    p.ProductID,
			Name:         p.ProductName,
			QuantitySold: p.QuantitySold,
			Revenue:      float64(p.Revenue) / 100,
		})
	}

	methods, err := s.analyticsRepo.GetSalesByPaymentMethod(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	summary.PaymentMethods = make([]PaymentMethodPoint, 0, len(methods))
	for _, m := range methods {
		summary.PaymentMethods = append(summary.PaymentMethods, PaymentMethodPoint{
			Method:       m.PaymentMethod,
			Revenue:      float64(m.Revenue) / 100,
			Transactions: m.TransactionCount,
		})
	}

	daily, err := s.analyticsRepo.GetDailySales(ctx, userID, days)
	if err != nil {
		return nil, err
	}
	summary.DailySalesData = make([]DailySalesPoint, 0, len(daily))
	for _, day := range daily {
		summary.DailySalesData = append(summary.DailySalesData, DailySalesPoint{
			Date:         day.Date.Format("Jan 02"),
			Revenue:      float64(day.Revenue) / 100,
			Transactions: day.TransactionCount,
		})
	}

	return summary, nil
}
