package request

// TransactionFilterRequest represents sales history filter parameters
type TransactionFilterRequest struct {
	PaymentMethod string `form:"payment_method"`
	From          string `form:"from"` // RFC3339 or YYYY-MM-DD
	To            string `form:"to"`
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
}
