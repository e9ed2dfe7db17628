package handler

import (
	"time"

	"github.com/arjunms/maninventory-api/internal/application/service"
	"github.com/arjunms/maninventory-api/internal/domain/repository"
	"github.com/arjunms/maninventory-api/internal/presentation/http/dto/request"
	"github.com/arjunms/maninventory-api/internal/presentation/http/dto/response"
	"github.com/arjunms/maninventory-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransactionHandler serves the sales history screens
type TransactionHandler struct {
	transactionService *service.TransactionService
	receiptService     *service.ReceiptService
	settingsService    *service.SettingsService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(
	transactionService *service.TransactionService,
	receiptService *service.ReceiptService,
	settingsService *service.SettingsService,
) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		receiptService:     receiptService,
		settingsService:    settingsService,
	}
}

// List handles listing the user's sales with filtering
func (h *TransactionHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var filter request.TransactionFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid filter parameters")
		return
	}

	paginationParams := &pagination.PaginationParams{
		Page:    filter.Page,
		PerPage: filter.PerPage,
	}
	paginationParams.Validate()

	params := &repository.TransactionFilterParams{
		Pagination:    paginationParams,
		PaymentMethod: filter.PaymentMethod,
	}

	if filter.From != "" {
		from, err := parseDate(filter.From)
		if err != nil {
			response.BadRequest(c, "Invalid from date")
			return
		}
		params.From = &from
	}
	if filter.To != "" {
		to, err := parseDate(filter.To)
		if err != nil {
			response.BadRequest(c, "Invalid to date")
			return
		}
		params.To = &to
	}

	result, err := h.transactionService.ListTransactions(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Transactions retrieved successfully", result)
}

// Get handles retrieving a single sale
func (h *TransactionHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	txn, err := h.transactionService.GetTransaction(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction retrieved successfully", txn)
}

// GetReceipt handles assembling a printable receipt for a sale
func (h *TransactionHandler) GetReceipt(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	txn, err := h.transactionService.GetTransaction(c.Request.Context(), *userID, id)
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
		"receipt": h.receiptService.Assemble(txn, settings),
	}
	if link := h.receiptService.UpiPaymentLink(txn, settings); link != "" {
		payload["upi_link"] = link
	}

	response.OK(c, "Receipt retrieved successfully", payload)
}

// parseDate accepts RFC3339 timestamps or plain YYYY-MM-DD dates
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
