package repository

import (
	"context"

	"github.com/arjunms/maninventory-api/internal/domain/entity"
	"github.com/google/uuid"
)

// SettingsRepository defines the interface for shop settings data access
type SettingsRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.ShopSettings, error)
	Create(ctx context.Context, settings *entity.ShopSettings) error
	Update(ctx context.Context, settings *entity.ShopSettings) error
}
