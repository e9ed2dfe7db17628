package repository

import (
	"context"
	"testing"
	"time"

	"github.com/arjunms/maninventory-api/internal/domain/entity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyKeyRoundTrip(t *testing.T) {
	db := newTestDB(t)
	userID := createTestUser(t, db)
	repo := NewIdempotencyRepository(db)
	ctx := context.Background()

	key := &entity.IdempotencyKey{
		Key:          "key-abc",
		UserID:       userID,
		Endpoint:     "POST /checkout",
		ResponseCode: 201,
		ResponseBody: `{"success":true}`,
		ExpiresAt:    time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, repo.Create(ctx, key))
	assert.NotEqual(t, uuid.Nil, key.ID)

	got, err := repo.GetByKey(ctx, "key-abc", userID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 201, got.ResponseCode)
	assert.Equal(t, `{"success":true}`, got.ResponseBody)
	assert.False(t, got.IsExpired())

	// Unknown key and foreign user both miss
	got, err = repo.GetByKey(ctx, "key-missing", userID)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.GetByKey(ctx, "key-abc", uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestIdempotencyDeleteExpired(t *testing.T) {
	db := newTestDB(t)
	userID := createTestUser(t, db)
	repo := NewIdempotencyRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key:          "key-stale",
		UserID:       userID,
		Endpoint:     "POST /checkout",
		ResponseCode: 201,
		ExpiresAt:    time.Now().Add(-time.Hour),
	}))
	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key:          "key-fresh",
		UserID:       userID,
		Endpoint:     "POST /checkout",
		ResponseCode: 201,
		ExpiresAt:    time.Now().Add(time.Hour),
	}))

	require.NoError(t, repo.DeleteExpired(ctx))

	var count int64
	db.Model(&entity.IdempotencyKey{}).Count(&count)
	assert.Equal(t, int64(1), count)

	got, err := repo.GetByKey(ctx, "key-fresh", userID)
	require.NoError(t, err)
	assert.NotNil(t, got)
}
