package service

import (
	"context"
	"strings"

	"github.com/arjunms/maninventory-api/internal/domain/entity"
	"github.com/arjunms/maninventory-api/internal/domain/repository"
	"github.com/arjunms/maninventory-api/pkg/apperror"
	"github.com/google/uuid"
)

// SettingsService handles shop settings business logic
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
	}
}

// GetSettings retrieves shop settings, creating defaults if not exists
func (s *SettingsService) GetSettings(ctx context.Context, userID uuid.UUID) (*entity.ShopSettings, error) {
	settings, err := s.settingsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// If no settings exist, create defaults so the caller always has a row
	if settings == nil {
		settings = &entity.ShopSettings{
			UserID:   userID,
			ShopName: "My Shop",
		}
		if err := s.settingsRepo.Create(ctx, settings); err != nil {
			return nil, err
		}
	}

	return settings, nil
}

// UpdateSettingsInput represents the input for updating shop settings
type UpdateSettingsInput struct {
	UserID   uuid.UUID
	ShopName string
	Location string
	UpiID    string
}

// UpdateSettings updates shop settings
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.ShopSettings, error) {
	if strings.TrimSpace(input.ShopName) == "" {
		return nil, apperror.NewBadRequestError("Shop name is required")
	}

	settings, err := s.settingsRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	// If no settings exist, create new
	if settings == nil {
		settings = &entity.ShopSettings{
			UserID: input.UserID,
		}
	}

	settings.ShopName = strings.TrimSpace(input.ShopName)
	settings.Location = strings.TrimSpace(input.Location)
	settings.UpiID = strings.TrimSpace(input.UpiID)

	if settings.ID == uuid.Nil {
		if err := s.settingsRepo.Create(ctx, settings); err != nil {
			return nil, err
		}
	} else {
		if err := s.settingsRepo.Update(ctx, settings); err != nil {
			return nil, err
		}
	}

	return settings, nil
}
