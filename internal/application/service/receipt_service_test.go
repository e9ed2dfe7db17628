package service

import (
	"testing"
	"time"

	"github.com/arjunms/maninventory-api/internal/domain/entity"
	"github.com/arjunms/maninventory-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTransaction(method enum.PaymentMethod) *entity.Transaction {
	return &entity.Transaction{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		SettlementID: "settle-rcpt",
		ReceiptNo:    "RCP-TEST",
		Items: entity.TransactionItems{
			{ProductID: uuid.New(), Name: "Rice 1kg", Quantity: 2, Unit: "kg", UnitPrice: 1500, Total: 3000},
			{ProductID: uuid.New(), Name: "Oil 1L", Quantity: 1, Unit: "l", UnitPrice: 1000, Total: 1000},
		},
		SubTotal:      4000,
		Tax:           200,
		Total:         4200,
		PaymentMethod: method,
		PaymentStatus: enum.PaymentStatusCompleted,
		CreatedAt:     time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
	}
}

func TestAssembleUsesStoredAmounts(t *testing.T) {
	svc := NewReceiptService(nil, nil, "INR")
	settings := &entity.ShopSettings{ShopName: "Asha Stores", Location: "Mysuru"}

	receipt := svc.Assemble(sampleTransaction(enum.PaymentMethodCash), settings)

	assert.Equal(t, "RCP-TEST", receipt.ReceiptNo)
	assert.Equal(t, "14 Mar 2026 10:30", receipt.Date)
	assert.Equal(t, "Asha Stores", receipt.Header.ShopName)
	assert.Equal(t, "cash", receipt.PaymentMethod)
	assert.Equal(t, "INR", receipt.Currency)

	require.Len(t, receipt.Items, 2)
	assert.Equal(t, 15.0, receipt.Items[0].UnitPrice)
	assert.Equal(t, 30.0, receipt.Items[0].Total)

	// Displayed amounts come from the ledger row and stay consistent
	assert.Equal(t, 40.0, receipt.SubTotal)
	assert.Equal(t, 2.0, receipt.Tax)
	assert.Equal(t, 42.0, receipt.Total)

	var itemSum float64
	for _, item := range receipt.Items {
		itemSum += item.Total
	}
	assert.Equal(t, receipt.SubTotal, itemSum)
	assert.Equal(t, receipt.Total, receipt.SubTotal+receipt.Tax)
}

func TestAssembleWithoutSettings(t *testing.T) {
	svc := NewReceiptService(nil, nil, "INR")

	receipt := svc.Assemble(sampleTransaction(enum.PaymentMethodCash), nil)

	assert.Empty(t, receipt.Header.ShopName)
	assert.Equal(t, 42.0, receipt.Total)
}

func TestUpiPaymentLink(t *testing.T) {
	svc := NewReceiptService(nil, nil, "INR")
	settings := &entity.ShopSettings{ShopName: "Asha Stores", UpiID: "asha@upi"}

	link := svc.UpiPaymentLink(sampleTransaction(enum.PaymentMethodUPI), settings)
	assert.Contains(t, link, "upi://pay?")
	assert.Contains(t, link, "pa=asha%40upi")
	assert.Contains(t, link, "am=42.00")
	assert.Contains(t, link, "cu=INR")

	// Cash sales and missing UPI IDs produce no link
	assert.Empty(t, svc.UpiPaymentLink(sampleTransaction(enum.PaymentMethodCash), settings))
	assert.Empty(t, svc.UpiPaymentLink(sampleTransaction(enum.PaymentMethodUPI), &entity.ShopSettings{ShopName: "X"}))
}
