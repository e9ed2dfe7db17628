package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/arjunms/maninventory-api/internal/domain/entity"
	domainRepo "github.com/arjunms/maninventory-api/internal/domain/repository"
	"github.com/arjunms/maninventory-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
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
		&entity.IdempotencyKey{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	user := &entity.User{FirstName: "Asha", Email: t.Name() + "@example.com"}
	require.NoError(t, db.Create(user).Error)
	return user.ID
}

func TestDecrementStockConditional(t *testing.T) {
	db := newTestDB(t)
	userID := createTestUser(t, db)
	repo := NewProductRepository(db)
	ctx := context.Background()

	product := &entity.Product{UserID: userID, Name: "Rice 1kg", Unit: "pcs", Price: 1500, Stock: 5}
	require.NoError(t, repo.Create(ctx, product))

	ok, err := repo.DecrementStock(ctx, product.ID, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stock)

	// Second decrement of 3 must fail: only 2 left
	ok, err = repo.DecrementStock(ctx, product.ID, 3)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err = repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stock)

	// Exact remaining amount succeeds and lands on zero
	ok, err = repo.DecrementStock(ctx, product.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err = repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)
}

func TestIncrementStock(t *testing.T) {
	db := newTestDB(t)
	userID := createTestUser(t, db)
	repo := NewProductRepository(db)
	ctx := context.Background()

	product := &entity.Product{UserID: userID, Name: "Oil 1L", Unit: "l", Price: 1000, Stock: 1}
	require.NoError(t, repo.Create(ctx, product))

	require.NoError(t, repo.IncrementStock(ctx, product.ID, 9))

	got, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Stock)
}

func TestGetByIDMissingReturnsNil(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)

	got, err := repo.GetByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListFiltersAndPaginates(t *testing.T) {
	db := newTestDB(t)
	userID := createTestUser(t, db)
	otherID := uuid.New()
	repo := NewProductRepository(db)
	ctx := context.Background()

	products := []entity.Product{
		{UserID: userID, Name: "Basmati Rice", Unit: "kg", Price: 9000, Stock: 10, MinimumStock: 2},
		{UserID: userID, Name: "Sona Rice", Unit: "kg", Price: 6000, Stock: 1, MinimumStock: 5},
		{UserID: userID, Name: "Sunflower Oil", Unit: "l", Price: 12000, Stock: 8, MinimumStock: 2},
		{UserID: otherID, Name: "Rice Flour", Unit: "kg", Price: 4000, Stock: 3, MinimumStock: 1},
	}
	require.NoError(t, repo.CreateBatch(ctx, products))

	// Search is case-insensitive and scoped to the owner
	got, total, err := repo.List(ctx, userID, &domainRepo.ProductFilterParams{
		Pagination: pagination.DefaultPagination(),
		Search:     "rice",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, got, 2)

	// Low stock filter
	got, total, err = repo.List(ctx, userID, &domainRepo.ProductFilterParams{
		Pagination: pagination.DefaultPagination(),
		LowStock:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, got, 1)
	assert.Equal(t, "Sona Rice", got[0].Name)

	// Pagination caps the page size while total counts everything
	got, total, err = repo.List(ctx, userID, &domainRepo.ProductFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, got, 2)
}

func TestListWithCursorPagesForward(t *testing.T) {
	db := newTestDB(t)
	userID := createTestUser(t, db)
	repo := NewProductRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		product := &entity.Product{
			UserID:    userID,
			Name:      fmt.Sprintf("Item %d", i),
			Unit:      "pcs",
			Price:     100,
			Stock:     1,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(product).Error)
	}

	params := &domainRepo.ProductCursorFilterParams{
		Cursor: &pagination.CursorParams{Limit: 2},
	}
	first, err := repo.ListWithCursor(ctx, userID, params)
	require.NoError(t, err)
	// limit+1 rows fetched so the caller can detect more pages
	assert.Len(t, first, 3)

	cursor := pagination.EncodeCursor(first[1].ID.String(), first[1].CreatedAt)
	params = &domainRepo.ProductCursorFilterParams{
		Cursor: &pagination.CursorParams{Limit: 2, Cursor: cursor},
	}
	second, err := repo.ListWithCursor(ctx, userID, params)
	require.NoError(t, err)
	require.NotEmpty(t, second)
	assert.Equal(t, "Item 2", second[0].Name)
}

func TestListWithCursorPagesBackward(t *testing.T) {
	db := newTestDB(t)
	userID := createTestUser(t, db)
	repo := NewProductRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	products := make([]*entity.Product, 5)
	for i := 0; i < 5; i++ {
		products[i] = &entity.Product{
			UserID:    userID,
			Name:      fmt.Sprintf("Item %d", i),
			Unit:      "pcs",
			Price:     100,
			Stock:     1,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(products[i]).Error)
	}

	// Walking back from the last item must return the rows immediately
	// before it, in ascending order, not the start of the table
	cursor := pagination.EncodeCursor(products[4].ID.String(), products[4].CreatedAt)
	rows, err := repo.ListWithCursor(ctx, userID, &domainRepo.ProductCursorFilterParams{
		Cursor: &pagination.CursorParams{
			Limit:     2,
			Cursor:    cursor,
			Direction: pagination.CursorDirectionPrev,
		},
	})
	require.NoError(t, err)

	// limit+1 rows, overflow row first so the caller can trim the front
	require.Len(t, rows, 3)
	assert.Equal(t, "Item 1", rows[0].Name)
	assert.Equal(t, "Item 2", rows[1].Name)
	assert.Equal(t, "Item 3", rows[2].Name)
}
