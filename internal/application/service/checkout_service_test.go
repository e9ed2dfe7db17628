package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/arjunms/maninventory-api/internal/domain/entity"
	"github.com/arjunms/maninventory-api/internal/domain/enum"
	"github.com/arjunms/maninventory-api/internal/domain/repository"
	infrarepo "github.com/arjunms/maninventory-api/internal/infrastructure/repository"
	"github.com/arjunms/maninventory-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type checkoutEnv struct {
	db              *gorm.DB
	productRepo     repository.ProductRepository
	transactionRepo repository.TransactionRepository
	cartRepo        repository.CartRepository
	settingsRepo    repository.SettingsRepository
	service         *CheckoutService
	userID          uuid.UUID
}

func newCheckoutEnv(t *testing.T) *checkoutEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.ShopSettings{},
		&entity.Product{},
		&entity.CartItem{},
		&entity.Transaction{},
	))

	user := &entity.User{FirstName: "Asha", Email: t.Name() + "@example.com"}
	require.NoError(t, db.Create(user).Error)

	env := &checkoutEnv{
		db:              db,
		productRepo:     infrarepo.NewProductRepository(db),
		transactionRepo: infrarepo.NewTransactionRepository(db),
		cartRepo:        infrarepo.NewCartRepository(db),
		settingsRepo:    infrarepo.NewSettingsRepository(db),
		userID:          user.ID,
	}
	env.service = NewCheckoutService(env.productRepo, env.transactionRepo, env.cartRepo, env.settingsRepo)
	return env
}

func (e *checkoutEnv) createProduct(t *testing.T, name string, priceCents int64, stock int) *entity.Product {
	t.Helper()
	product := &entity.Product{
		UserID: e.userID,
		Name:   name,
		Unit:   "pcs",
		Price:  priceCents,
		Stock:  stock,
	}
	require.NoError(t, e.db.Create(product).Error)
	return product
}

func (e *checkoutEnv) stockOf(t *testing.T, id uuid.UUID) int {
	t.Helper()
	var product entity.Product
	require.NoError(t, e.db.First(&product, "id = ?", id).Error)
	return product.Stock
}

func TestSettleRecordsSaleAndDecrementsStock(t *testing.T) {
	env := newCheckoutEnv(t)
	rice := env.createProduct(t, "Rice 1kg", 1500, 5)

	draft := NewBillDraft(0.05)
	require.NoError(t, draft.AddItem(rice, 3))

	result, err := env.service.Settle(context.Background(), &SettleInput{
		UserID:        env.userID,
		SettlementID:  "settle-1",
		PaymentMethod: enum.PaymentMethodCash,
		Draft:         draft,
	})
	require.NoError(t, err)

	assert.Equal(t, SettlementCreated, result.Outcome)
	assert.Empty(t, result.StockSyncIssues)
	require.NotNil(t, result.Transaction)
	assert.Equal(t, int64(4500), result.Transaction.SubTotal)
	assert.Equal(t, int64(225), result.Transaction.Tax)
	assert.Equal(t, int64(4725), result.Transaction.Total)
	assert.NotEmpty(t, result.Transaction.ReceiptNo)

	assert.Equal(t, 2, env.stockOf(t, rice.ID))
	assert.True(t, draft.IsEmpty())

	var count int64
	env.db.Model(&entity.Transaction{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSettleEmptyBill(t *testing.T) {
	env := newCheckoutEnv(t)

	_, err := env.service.Settle(context.Background(), &SettleInput{
		UserID:        env.userID,
		PaymentMethod: enum.PaymentMethodCash,
		Draft:         NewBillDraft(0.05),
	})
	assert.ErrorIs(t, err, apperror.ErrEmptyBill)
}

func TestSettleUnknownPaymentMethod(t *testing.T) {
	env := newCheckoutEnv(t)
	rice := env.createProduct(t, "Rice 1kg", 1500, 5)

	draft := NewBillDraft(0.05)
	require.NoError(t, draft.AddItem(rice, 1))

	_, err := env.service.Settle(context.Background(), &SettleInput{
		UserID:        env.userID,
		PaymentMethod: enum.PaymentMethod("card"),
		Draft:         draft,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestSettleUpiWithoutUpiID(t *testing.T) {
	env := newCheckoutEnv(t)
	rice := env.createProduct(t, "Rice 1kg", 1500, 5)

	draft := NewBillDraft(0.05)
	require.NoError(t, draft.AddItem(rice, 1))

	_, err := env.service.Settle(context.Background(), &SettleInput{
		UserID:        env.userID,
		PaymentMethod: enum.PaymentMethodUPI,
		Draft:         draft,
	})
	assert.ErrorIs(t, err, apperror.ErrPaymentMethodUnavailable)
	assert.Equal(t, 5, env.stockOf(t, rice.ID))
}

func TestSettleReplayReturnsExistingSale(t *testing.T) {
	env := newCheckoutEnv(t)
	rice := env.createProduct(t, "Rice 1kg", 1500, 5)

	draft := NewBillDraft(0.05)
	require.NoError(t, draft.AddItem(rice, 3))

	first, err := env.service.Settle(context.Background(), &SettleInput{
		UserID:        env.userID,
		SettlementID:  "settle-replay",
		PaymentMethod: enum.PaymentMethodCash,
		Draft:         draft,
	})
	require.NoError(t, err)
	require.Equal(t, SettlementCreated, first.Outcome)

	retry := NewBillDraft(0.05)
	var fresh entity.Product
	require.NoError(t, env.db.First(&fresh, "id = ?", rice.ID).Error)
	require.NoError(t, retry.AddItem(&fresh, 1))

	second, err := env.service.Settle(context.Background(), &SettleInput{
		UserID:        env.userID,
		SettlementID:  "settle-replay",
		PaymentMethod: enum.PaymentMethodCash,
		Draft:         retry,
	})
	require.NoError(t, err)

	assert.Equal(t, SettlementAlreadyExists, second.Outcome)
	assert.Equal(t, first.Transaction.ID, second.Transaction.ID)

	// Replay must not decrement stock a second time
	assert.Equal(t, 2, env.stockOf(t, rice.ID))

	var count int64
	env.db.Model(&entity.Transaction{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

// failingTransactionRepo wraps a real repo but refuses every Create
type failingTransactionRepo struct {
	repository.TransactionRepository
}

func (r *failingTransactionRepo) Create(ctx context.Context, txn *entity.Transaction) error {
	return errors.New("connection reset")
}

func TestSettleLedgerFailureLeavesStockUntouched(t *testing.T) {
	env := newCheckoutEnv(t)
	rice := env.createProduct(t, "Rice 1kg", 1500, 5)

	svc := NewCheckoutService(
		env.productRepo,
		&failingTransactionRepo{TransactionRepository: env.transactionRepo},
		env.cartRepo,
		env.settingsRepo,
	)

	draft := NewBillDraft(0.05)
	require.NoError(t, draft.AddItem(rice, 3))

	_, err := svc.Settle(context.Background(), &SettleInput{
		UserID:        env.userID,
		SettlementID:  "settle-fail",
		PaymentMethod: enum.PaymentMethodCash,
		Draft:         draft,
	})
	require.Error(t, err)
	assert.Equal(t, 502, apperror.GetAppError(err).Code)
	assert.Contains(t, err.Error(), "nothing changed")

	assert.Equal(t, 5, env.stockOf(t, rice.ID))

	var count int64
	env.db.Model(&entity.Transaction{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestSettlePartialStockSyncIsTaggedSuccess(t *testing.T) {
	env := newCheckoutEnv(t)
	rice := env.createProduct(t, "Rice 1kg", 1500, 5)
	oil := env.createProduct(t, "Oil 1L", 1000, 5)

	draft := NewBillDraft(0.05)
	require.NoError(t, draft.AddItem(rice, 3))
	require.NoError(t, draft.AddItem(oil, 2))

	// Stock drifts between building the bill and settling it
	require.NoError(t, env.db.Model(&entity.Product{}).Where("id = ?", oil.ID).Update("stock", 1).Error)

	result, err := env.service.Settle(context.Background(), &SettleInput{
		UserID:        env.userID,
		SettlementID:  "settle-partial",
		PaymentMethod: enum.PaymentMethodCash,
		Draft:         draft,
	})
	require.NoError(t, err)

	// The sale stands even though one decrement could not apply
	assert.Equal(t, SettlementCreated, result.Outcome)
	require.Len(t, result.StockSyncIssues, 1)
	assert.Equal(t, oil.ID, result.StockSyncIssues[0].ProductID)
	assert.Equal(t, 2, result.StockSyncIssues[0].Quantity)
	assert.Equal(t, apperror.ErrOutOfStockAtSettlement.Message, result.StockSyncIssues[0].Reason)

	assert.Equal(t, 2, env.stockOf(t, rice.ID))
	assert.Equal(t, 1, env.stockOf(t, oil.ID))

	var count int64
	env.db.Model(&entity.Transaction{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSettleConcurrentDoesNotOversell(t *testing.T) {
	env := newCheckoutEnv(t)
	rice := env.createProduct(t, "Rice 1kg", 1500, 5)

	// Both bills are built from the same stock-5 snapshot; only one of the
	// two decrements of 3 can apply
	results := make([]*SettlementResult, 2)
	errs := make([]error, 2)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			draft := NewBillDraft(0.05)
			if err := draft.AddItem(rice, 3); err != nil {
				errs[i] = err
				return
			}
			results[i], errs[i] = env.service.Settle(context.Background(), &SettleInput{
				UserID:        env.userID,
				SettlementID:  fmt.Sprintf("settle-race-%d", i),
				PaymentMethod: enum.PaymentMethodCash,
				Draft:         draft,
			})
		}(i)
	}
	wg.Wait()

	issues := 0
	for i := 0; i < 2; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, SettlementCreated, results[i].Outcome)
		issues += len(results[i].StockSyncIssues)
	}
	assert.Equal(t, 1, issues)

	// Exactly one decrement landed; stock never goes negative
	assert.Equal(t, 2, env.stockOf(t, rice.ID))

	var count int64
	env.db.Model(&entity.Transaction{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestSettleClearsCart(t *testing.T) {
	env := newCheckoutEnv(t)
	rice := env.createProduct(t, "Rice 1kg", 1500, 5)

	require.NoError(t, env.db.Create(&entity.CartItem{
		UserID:    env.userID,
		ProductID: rice.ID,
		Quantity:  3,
	}).Error)

	draft := NewBillDraft(0.05)
	require.NoError(t, draft.AddItem(rice, 3))

	_, err := env.service.Settle(context.Background(), &SettleInput{
		UserID:        env.userID,
		SettlementID:  "settle-cart",
		PaymentMethod: enum.PaymentMethodCash,
		Draft:         draft,
	})
	require.NoError(t, err)

	items, err := env.cartRepo.GetByUserID(context.Background(), env.userID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
