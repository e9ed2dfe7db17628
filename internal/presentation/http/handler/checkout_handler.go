package handler

import (
	"github.com/arjunms/maninventory-api/internal/application/service"
	"github.com/arjunms/maninventory-api/internal/domain/enum"
	"github.com/arjunms/maninventory-api/internal/presentation/http/dto/request"
	"github.com/arjunms/maninventory-api/internal/presentation/http/dto/response"
	"github.com/arjunms/maninventory-api/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// CheckoutHandler settles bills. Each request builds a fresh working bill
// from the submitted line items, so retries with the same Idempotency-Key
// reach the settlement service with identical content.
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
	productService  *service.ProductService
	receiptService  *service.ReceiptService
	settingsService *service.SettingsService
	taxRate         float64
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(
	checkoutService *service.CheckoutService,
	productService *service.ProductService,
	receiptService *service.ReceiptService,
	settingsService *service.SettingsService,
	taxRate float64,
) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		productService:  productService,
		receiptService:  receiptService,
		settingsService: settingsService,
		taxRate:         taxRate,
	}
}

// Checkout handles bill settlement
// @Summary Checkout
// @Description Settle a bill: record the sale and decrement stock
// @Tags checkout
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Settlement idempotency token"
// @Param request body request.CheckoutRequest true "Bill line items and payment method"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	draft := service.NewBillDraft(h.taxRate)
	for _, item := range req.Items {
		product, err := h.productService.GetProduct(c.Request.Context(), *userID, item.ProductID)
		if err != nil {
			response.Error(c, err)
			return
		}
		if err := draft.AddItem(product, item.Quantity); err != nil {
			response.Error(c, err)
			return
		}
	}

	result, err := h.checkoutService.Settle(c.Request.Context(), &service.SettleInput{
		UserID:        *userID,
		SettlementID:  c.GetHeader(middleware.IdempotencyKeyHeader),
		PaymentMethod: enum.PaymentMethod(req.PaymentMethod),
		Draft:         draft,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	settings, err := h.settingsService.GetSettings(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	payload := gin.H{
		"outcome":     result.Outcome,
		"transaction": result.Transaction,
		"receipt":     h.receiptService.Assemble(result.Transaction, settings),
	}
	if len(result.StockSyncIssues) > 0 {
		payload["stock_sync_issues"] = result.StockSyncIssues
	}
	if link := h.receiptService.UpiPaymentLink(result.Transaction, settings); link != "" {
		payload["upi_link"] = link
	}

	if result.Outcome == service.SettlementAlreadyExists {
		response.OK(c, "Sale was already recorded", payload)
		return
	}

	response.Created(c, "Sale recorded successfully", payload)
}
