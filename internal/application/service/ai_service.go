package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/arjunms/maninventory-api/internal/domain/repository"
	"github.com/arjunms/maninventory-api/internal/infrastructure/aigateway"
	"github.com/arjunms/maninventory-api/pkg/apperror"
	"github.com/google/uuid"
)

const (
	maxPromptArrayLen = 1000
	maxImportFileSize = 100 * 1024
	maxFileNameLen    = 255
	maxPeriodLen      = 20
)

// AIService assembles prompts from shop data and forwards them to the chat
// gateway. The gateway key stays server-side; callers only ever see parsed
// results or typed errors.
type AIService struct {
	gateway       *aigateway.Client
	productRepo   repository.ProductRepository
	analyticsRepo repository.AnalyticsRepository
}

// NewAIService creates a new AI service
func NewAIService(
	gateway *aigateway.Client,
	productRepo repository.ProductRepository,
	analyticsRepo repository.AnalyticsRepository,
) *AIService {
	return &AIService{
		gateway:       gateway,
		productRepo:   productRepo,
		analyticsRepo: analyticsRepo,
	}
}

// RestockSuggestion is one recommendation from the model
type RestockSuggestion struct {
	ProductName       string `json:"product_name"`
	CurrentStock      int    `json:"current_stock"`
	SuggestedQuantity int    `json:"suggested_quantity"`
	Reason            string `json:"reason"`
}

type restockProductRow struct {
	Name         string  `json:"name"`
	Stock        int     `json:"stock"`
	Unit         string  `json:"unit"`
	MinimumStock int     `json:"minimum_stock"`
	Price        float64 `json:"price"`
}

type restockSalesRow struct {
	Name         string `json:"name"`
	QuantitySold int    `json:"quantity_sold"`
}

// GetRestockSuggestions asks the model which products to reorder, based on
// current inventory and the last week of sales
func (s *AIService) GetRestockSuggestions(ctx context.Context, userID uuid.UUID) ([]RestockSuggestion, error) {
	products, err := s.productRepo.GetLowStock(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return []RestockSuggestion{}, nil
	}
	if len(products) > maxPromptArrayLen {
		products = products[:maxPromptArrayLen]
	}

	inventory := make([]restockProductRow, 0, len(products))
	for _, p := range products {
		inventory = append(inventory, restockProductRow{
			Name:         p.Name,
			Stock:        p.Stock,
			Unit:         p.Unit,
			MinimumStock: p.MinimumStock,
			Price:        p.GetPriceDecimal(),
		})
	}

	now := time.Now()
	weekAgo := now.AddDate(0, 0, -7)
	topProducts, err := s.analyticsRepo.GetTopProducts(ctx, userID, weekAgo, now, maxPromptArrayLen)
	if err != nil {
		return nil, err
	}
	sales := make([]restockSalesRow, 0, len(topProducts))
	for _, p := range topProducts {
		sales = append(sales, restockSalesRow{
			Name:         p.ProductName,
			QuantitySold: p.QuantitySold,
		})
	}

	inventoryJSON, _ := json.Marshal(inventory)
	salesJSON, _ := json.Marshal(sales)

	prompt := fmt.Sprintf(`You are an inventory assistant for a small shop.
Low-stock inventory: %s
Units sold in the last 7 days: %s
Suggest restock quantities. Respond with ONLY a JSON array, each element:
{"product_name": string, "current_stock": number, "suggested_quantity": number, "reason": string}`,
		inventoryJSON, salesJSON)

	content, err := s.gateway.Complete(ctx, []aigateway.Message{
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return nil, err
	}

	var suggestions []RestockSuggestion
	if err := aigateway.ExtractJSONArray(content, &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}

// GetAnalyticsInsights asks the model to narrate sales performance for a
// period like "7 days" or "this month". The reply is free text.
func (s *AIService) GetAnalyticsInsights(ctx context.Context, userID uuid.UUID, period string, summary *AnalyticsSummary) (string, error) {
	if len(period) > maxPeriodLen {
		return "", apperror.NewBadRequestError("Period is too long")
	}
	if period == "" {
		period = "7 days"
	}
	if summary == nil {
		return "", apperror.NewBadRequestError("Analytics summary is required")
	}
	if len(summary.TopProducts) > maxPromptArrayLen || len(summary.DailySalesData) > maxPromptArrayLen {
		return "", apperror.NewBadRequestError("Too much data for insights")
	}

	summaryJSON, _ := json.Marshal(summary)

	prompt := fmt.Sprintf(`You are a retail analytics assistant for a small shop.
Sales summary for the last %s: %s
Write 3-5 short, concrete insights about sales trends, best sellers and
anything the shopkeeper should act on. Plain text, no markdown.`,
		period, summaryJSON)

	content, err := s.gateway.Complete(ctx, []aigateway.Message{
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return "", err
	}
	return content, nil
}

// ExtractProductsFromFile asks the model to turn pasted stock-list text into
// structured product rows for bulk import
func (s *AIService) ExtractProductsFromFile(ctx context.Context, fileName, content string) ([]ImportProductRow, error) {
	if len(fileName) > maxFileNameLen {
		return nil, apperror.NewBadRequestError("File name is too long")
	}
	if content == "" {
		return nil, apperror.NewBadRequestError("File content is required")
	}
	if len(content) > maxImportFileSize {
		return nil, apperror.NewBadRequestError("File is too large, maximum 100KB")
	}

	prompt := fmt.Sprintf(`Extract product rows from this stock list file (%s):
%s
Respond with ONLY a JSON array, each element:
{"name": string, "stock": number, "unit": string, "price": number, "minimum_stock": number, "category": string}
Use sensible defaults for missing fields (unit "pcs", minimum_stock 0).`,
		fileName, content)

	reply, err := s.gateway.Complete(ctx, []aigateway.Message{
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return nil, err
	}

	var rows []ImportProductRow
	if err := aigateway.ExtractJSONArray(reply, &rows); err != nil {
		return nil, err
	}
	if len(rows) > maxPromptArrayLen {
		rows = rows[:maxPromptArrayLen]
	}
	return rows, nil
}
