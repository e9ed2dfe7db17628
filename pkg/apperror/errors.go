package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound           = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden          = &AppError{Code: http.StatusForbidden, Message: "Forbidden"}
	ErrBadRequest         = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrConflict           = &AppError{Code: http.StatusConflict, Message: "Resource already exists"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Message: "Invalid email or password"}
	ErrTokenExpired       = &AppError{Code: http.StatusUnauthorized, Message: "Token has expired"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Message: "Invalid token"}
)

// Billing and settlement errors
var (
	// ErrEmptyBill is returned when checkout is attempted on a bill with no line items.
	ErrEmptyBill = &AppError{Code: http.StatusBadRequest, Message: "Add items to bill first"}

	// ErrPaymentMethodUnavailable is returned when UPI is selected but no UPI ID is configured.
	ErrPaymentMethodUnavailable = &AppError{Code: http.StatusUnprocessableEntity, Message: "UPI payments are not configured, add a UPI ID in settings"}

	// ErrOutOfStockAtSettlement is reported per line item when the conditional
	// decrement finds less stock than the bill assumed.
	ErrOutOfStockAtSettlement = &AppError{Code: http.StatusConflict, Message: "Stock changed during checkout"}

	// ErrStoreUnavailable wraps transport failures against the database.
	ErrStoreUnavailable = &AppError{Code: http.StatusServiceUnavailable, Message: "Store is unavailable"}

	// ErrUpstreamParse is returned when the AI gateway response cannot be parsed.
	ErrUpstreamParse = &AppError{Code: http.StatusBadGateway, Message: "Could not parse AI gateway response"}

	// ErrUpstreamRateLimited maps the AI gateway's 429 response.
	ErrUpstreamRateLimited = &AppError{Code: http.StatusTooManyRequests, Message: "Rate limit exceeded. Please try again later."}

	// ErrUpstreamPaymentRequired maps the AI gateway's 402 response.
	ErrUpstreamPaymentRequired = &AppError{Code: http.StatusPaymentRequired, Message: "Payment required. Please add credits to your workspace."}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// NewInsufficientStockError creates the advisory stock error raised while building a bill.
func NewInsufficientStockError(name string, available int, unit string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: fmt.Sprintf("Only %d %s of %s available in stock", available, unit, name),
	}
}

// NewSettlementFailedError creates the error returned when the ledger write fails.
// No stock has been touched when this is returned.
func NewSettlementFailedError(cause error) *AppError {
	msg := "Payment could not be recorded, nothing changed"
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, cause)
	}
	return &AppError{
		Code:    http.StatusBadGateway,
		Message: msg,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
