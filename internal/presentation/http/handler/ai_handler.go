package handler

import (
	"fmt"

	"github.com/arjunms/maninventory-api/internal/application/service"
	"github.com/arjunms/maninventory-api/internal/presentation/http/dto/request"
	"github.com/arjunms/maninventory-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// AIHandler proxies assistant features. The gateway API key never leaves the
// server; clients only ever see parsed suggestions or insight text.
type AIHandler struct {
	aiService        *service.AIService
	dashboardService *service.DashboardService
}

// NewAIHandler creates a new AI handler
func NewAIHandler(aiService *service.AIService, dashboardService *service.DashboardService) *AIHandler {
	return &AIHandler{
		aiService:        aiService,
		dashboardService: dashboardService,
	}
}

// GetRestockSuggestions handles restock recommendations for low-stock items
func (h *AIHandler) GetRestockSuggestions(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	suggestions, err := h.aiService.GetRestockSuggestions(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Restock suggestions retrieved successfully", gin.H{
		"suggestions": suggestions,
	})
}

// GetInsights handles narrated analytics for a recent period
func (h *AIHandler) GetInsights(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.AnalyticsInsightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	days := req.Days
	if days == 0 {
		days = 7
	}
	period := req.Period
	if period == "" {
		period = fmt.Sprintf("%d days", days)
	}

	summary, err := h.dashboardService.GetAnalyticsSummary(c.Request.Context(), *userID, days)
	if err != nil {
		response.Error(c, err)
		return
	}

	insights, err := h.aiService.GetAnalyticsInsights(c.Request.Context(), *userID, period, summary)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Insights retrieved successfully", gin.H{
		"insights": insights,
	})
}

// ExtractProducts handles turning pasted stock-list text into import rows
func (h *AIHandler) ExtractProducts(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.ExtractProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	rows, err := h.aiService.ExtractProductsFromFile(c.Request.Context(), req.FileName, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Products extracted successfully", gin.H{
		"products": rows,
	})
}
