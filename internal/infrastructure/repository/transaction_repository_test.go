package repository

import (
	"context"
	"testing"
	"time"

	"github.com/arjunms/maninventory-api/internal/domain/entity"
	"github.com/arjunms/maninventory-api/internal/domain/enum"
	domainRepo "github.com/arjunms/maninventory-api/internal/domain/repository"
	"github.com/arjunms/maninventory-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransaction(userID uuid.UUID, settlementID string, method enum.PaymentMethod) *entity.Transaction {
	return &entity.Transaction{
		UserID:       userID,
		SettlementID: settlementID,
		ReceiptNo:    "RCP-" + settlementID,
		Items: entity.TransactionItems{
			{ProductID: uuid.New(), Name: "Rice 1kg", Quantity: 2, Unit: "pcs", UnitPrice: 1500, Total: 3000},
		},
		SubTotal:      3000,
		Tax:           150,
		Total:         3150,
		PaymentMethod: method,
		PaymentStatus: enum.PaymentStatusCompleted,
	}
}

func TestTransactionCreateAndGetBySettlementID(t *testing.T) {
	db := newTestDB(t)
	userID := createTestUser(t, db)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	txn := newTestTransaction(userID, "settle-abc", enum.PaymentMethodCash)
	require.NoError(t, repo.Create(ctx, txn))

	got, err := repo.GetBySettlementID(ctx, userID, "settle-abc")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, txn.ID, got.ID)
	assert.Equal(t, int64(3150), got.Total)

	// Snapshot survives the round trip
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Rice 1kg", got.Items[0].Name)
	assert.Equal(t, int64(1500), got.Items[0].UnitPrice)

	// Unknown settlement ID is a nil, not an error
	got, err = repo.GetBySettlementID(ctx, userID, "settle-missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Another user never sees the row
	got, err = repo.GetBySettlementID(ctx, uuid.New(), "settle-abc")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTransactionSettlementIDUnique(t *testing.T) {
	db := newTestDB(t)
	userID := createTestUser(t, db)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestTransaction(userID, "settle-dup", enum.PaymentMethodCash)))

	err := repo.Create(ctx, newTestTransaction(userID, "settle-dup", enum.PaymentMethodCash))
	assert.Error(t, err)
}

func TestTransactionListFilters(t *testing.T) {
	db := newTestDB(t)
	userID := createTestUser(t, db)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	old := newTestTransaction(userID, "settle-old", enum.PaymentMethodCash)
	require.NoError(t, repo.Create(ctx, old))
	require.NoError(t, db.Model(old).Update("created_at", time.Now().AddDate(0, 0, -10)).Error)

	require.NoError(t, repo.Create(ctx, newTestTransaction(userID, "settle-cash", enum.PaymentMethodCash)))
	require.NoError(t, repo.Create(ctx, newTestTransaction(userID, "settle-upi", enum.PaymentMethodUPI)))

	// Payment method filter
	got, total, err := repo.List(ctx, userID, &domainRepo.TransactionFilterParams{
		Pagination:    pagination.DefaultPagination(),
		PaymentMethod: "upi",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, got, 1)
	assert.Equal(t, "settle-upi", got[0].SettlementID)

	// Date window excludes the old sale
	from := time.Now().AddDate(0, 0, -1)
	got, total, err = repo.List(ctx, userID, &domainRepo.TransactionFilterParams{
		Pagination: pagination.DefaultPagination(),
		From:       &from,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, got, 2)
}

func TestTransactionGetRecent(t *testing.T) {
	db := newTestDB(t)
	userID := createTestUser(t, db)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	for _, id := range []string{"s1", "s2", "s3"} {
		require.NoError(t, repo.Create(ctx, newTestTransaction(userID, id, enum.PaymentMethodCash)))
	}

	got, err := repo.GetRecent(ctx, userID, 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
