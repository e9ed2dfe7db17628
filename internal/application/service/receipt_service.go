package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/arjunms/maninventory-api/internal/domain/entity"
	"github.com/arjunms/maninventory-api/internal/domain/enum"
	"github.com/arjunms/maninventory-api/internal/domain/repository"
	"github.com/arjunms/maninventory-api/pkg/apperror"
	"github.com/google/uuid"
)

// ReceiptService presents settled transactions. Assembly is a pure
// transformation of the stored snapshot: amounts come straight from the
// ledger row, never re-derived from the catalog.
type ReceiptService struct {
	transactionRepo repository.TransactionRepository
	settingsRepo    repository.SettingsRepository
	currency        string
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	transactionRepo repository.TransactionRepository,
	settingsRepo repository.SettingsRepository,
	currency string,
) *ReceiptService {
	return &ReceiptService{
		transactionRepo: transactionRepo,
		settingsRepo:    settingsRepo,
		currency:        currency,
	}
}

// GetReceipt loads a transaction and assembles its receipt
func (s *ReceiptService) GetReceipt(ctx context.Context, userID, transactionID uuid.UUID) (*entity.Receipt, error) {
	txn, err := s.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn == nil || txn.UserID != userID {
		return nil, apperror.NewNotFoundError("Transaction")
	}

	settings, err := s.settingsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.Assemble(txn, settings), nil
}

// Assemble builds a receipt from a transaction and the shop settings.
// Settings may be nil; the header is left empty in that case.
func (s *ReceiptService) Assemble(txn *entity.Transaction, settings *entity.ShopSettings) *entity.Receipt {
	receipt := &entity.Receipt{
		ReceiptNo:     txn.ReceiptNo,
		Date:          txn.CreatedAt.Format("02 Jan 2006 15:04"),
		PaymentMethod: string(txn.PaymentMethod),
		Items:         make([]entity.ReceiptItem, 0, len(txn.Items)),
		SubTotal:      txn.GetSubTotalDecimal(),
		Tax:           txn.GetTaxDecimal(),
		Total:         txn.GetTotalDecimal(),
		Currency:      s.currency,
	}

	if settings != nil {
		receipt.Header = entity.ReceiptHeader{
			ShopName: settings.ShopName,
			Location: settings.Location,
		}
	}

	for _, item := range txn.Items {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			Unit:      item.Unit,
			UnitPrice: float64(item.UnitPrice) / 100,
			Total:     float64(item.Total) / 100,
		})
	}

	return receipt
}

// UpiPaymentLink builds the upi:// deep link for a UPI sale so the frontend
// can render it as a QR code. Empty when the sale was not paid by UPI or no
// UPI ID is configured.
func (s *ReceiptService) UpiPaymentLink(txn *entity.Transaction, settings *entity.ShopSettings) string {
	if txn.PaymentMethod != enum.PaymentMethodUPI || !settings.HasUpi() {
		return ""
	}

	params := url.Values{}
	params.Set("pa", settings.UpiID)
	params.Set("pn", settings.ShopName)
	params.Set("am", fmt.Sprintf("%.2f", txn.GetTotalDecimal()))
	params.Set("cu", s.currency)

	return "upi://pay?" + params.Encode()
}
