package service

import (
	"context"
	"log"

	"github.com/arjunms/maninventory-api/internal/domain/entity"
	"github.com/arjunms/maninventory-api/internal/domain/enum"
	"github.com/arjunms/maninventory-api/internal/domain/repository"
	"github.com/arjunms/maninventory-api/pkg/apperror"
	"github.com/arjunms/maninventory-api/pkg/utils"
	"github.com/google/uuid"
)

// SettlementOutcome tags how a settlement request was resolved
type SettlementOutcome string

const (
	// SettlementCreated means a new sale was recorded
	SettlementCreated SettlementOutcome = "created"
	// SettlementAlreadyExists means the settlement ID was seen before and
	// the previously recorded sale is returned; no stock was touched
	SettlementAlreadyExists SettlementOutcome = "already_exists"
)

// StockSyncIssue describes one line item whose stock decrement did not
// apply after the sale was recorded
type StockSyncIssue struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Reason    string    `json:"reason"`
}

// SettlementResult is the outcome of a checkout. A non-empty StockSyncIssues
// list is a partial-sync success, not a failure: the sale is in the ledger
// either way.
type SettlementResult struct {
	Outcome         SettlementOutcome   `json:"outcome"`
	Transaction     *entity.Transaction `json:"transaction"`
	StockSyncIssues []StockSyncIssue    `json:"stock_sync_issues,omitempty"`
}

// SettleInput carries everything needed to settle a bill. SettlementID is
// the caller's idempotency token; when empty a fresh one is generated and
// the request cannot be safely retried.
type SettleInput struct {
	UserID        uuid.UUID
	SettlementID  string
	PaymentMethod enum.PaymentMethod
	Draft         *BillDraft
}

// CheckoutService converts a working bill into a ledger record and stock
// decrements. The ledger write is ordered strictly before any stock
// mutation, and decrements run sequentially per line item.
type CheckoutService struct {
	productRepo     repository.ProductRepository
	transactionRepo repository.TransactionRepository
	cartRepo        repository.CartRepository
	settingsRepo    repository.SettingsRepository
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	productRepo repository.ProductRepository,
	transactionRepo repository.TransactionRepository,
	cartRepo repository.CartRepository,
	settingsRepo repository.SettingsRepository,
) *CheckoutService {
	return &CheckoutService{
		productRepo:     productRepo,
		transactionRepo: transactionRepo,
		cartRepo:        cartRepo,
		settingsRepo:    settingsRepo,
	}
}

// Settle records the sale and reconciles stock.
//
// Step 1 writes the ledger record; if that fails nothing has changed and the
// whole operation aborts. Step 2 decrements stock per line item with a
// conditional update, collecting issues instead of rolling back: once the
// ledger row exists the sale stands. Step 3 clears the user's server-side
// cart best-effort.
func (s *CheckoutService) Settle(ctx context.Context, input *SettleInput) (*SettlementResult, error) {
	if input.Draft == nil || input.Draft.IsEmpty() {
		return nil, apperror.ErrEmptyBill
	}
	if !input.PaymentMethod.Valid() {
		return nil, apperror.NewBadRequestError("Unknown payment method")
	}

	if input.PaymentMethod == enum.PaymentMethodUPI {
		settings, err := s.settingsRepo.GetByUserID(ctx, input.UserID)
		if err != nil {
			return nil, err
		}
		if !settings.HasUpi() {
			return nil, apperror.ErrPaymentMethodUnavailable
		}
	}

	settlementID := input.SettlementID
	if settlementID == "" {
		settlementID = utils.GenerateSettlementID()
	} else {
		existing, err := s.transactionRepo.GetBySettlementID(ctx, input.UserID, settlementID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return &SettlementResult{
				Outcome:     SettlementAlreadyExists,
				Transaction: existing,
			}, nil
		}
	}

	lines := input.Draft.Lines()
	totals := input.Draft.ComputeTotals()

	items := make(entity.TransactionItems, 0, len(lines))
	for _, line := range lines {
		items = append(items, entity.TransactionItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			Unit:      line.Unit,
			UnitPrice: line.UnitPrice,
			Total:     line.UnitPrice * int64(line.Quantity),
		})
	}

	txn := &entity.Transaction{
		UserID:        input.UserID,
		SettlementID:  settlementID,
		ReceiptNo:     utils.GenerateReceiptNo(),
		Items:         items,
		SubTotal:      totals.SubTotal,
		Tax:           totals.Tax,
		Total:         totals.Total,
		PaymentMethod: input.PaymentMethod,
		PaymentStatus: enum.PaymentStatusCompleted,
	}

	// Step 1: ledger write. On failure, check whether a concurrent replay of
	// the same settlement ID already recorded the sale.
	if err := s.transactionRepo.Create(ctx, txn); err != nil {
		existing, lookupErr := s.transactionRepo.GetBySettlementID(ctx, input.UserID, settlementID)
		if lookupErr == nil && existing != nil {
			return &SettlementResult{
				Outcome:     SettlementAlreadyExists,
				Transaction: existing,
			}, nil
		}
		return nil, apperror.NewSettlementFailedError(err)
	}

	// Step 2: sequential conditional decrements. Failures here never undo
	// Step 1; they are reported so the user knows displayed stock may lag.
	var issues []StockSyncIssue
	for _, line := range lines {
		ok, err := s.productRepo.DecrementStock(ctx, line.ProductID, line.Quantity)
		if err != nil {
			log.Printf("Stock decrement failed (settlement %s, product %s): %v", settlementID, line.ProductID, err)
			issues = append(issues, StockSyncIssue{
				ProductID: line.ProductID,
				Name:      line.Name,
				Quantity:  line.Quantity,
				Reason:    apperror.ErrStoreUnavailable.Message,
			})
			continue
		}
		if !ok {
			log.Printf("Insufficient stock at settlement (settlement %s, product %s, qty %d)", settlementID, line.ProductID, line.Quantity)
			issues = append(issues, StockSyncIssue{
				ProductID: line.ProductID,
				Name:      line.Name,
				Quantity:  line.Quantity,
				Reason:    apperror.ErrOutOfStockAtSettlement.Message,
			})
		}
	}

	// Step 3: best-effort cleanup of the server-side cart shadow
	if err := s.cartRepo.ClearByUserID(ctx, input.UserID); err != nil {
		log.Printf("Cart clear failed after settlement %s: %v", settlementID, err)
	}

	input.Draft.Clear()

	return &SettlementResult{
		Outcome:         SettlementCreated,
		Transaction:     txn,
		StockSyncIssues: issues,
	}, nil
}
