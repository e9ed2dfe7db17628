package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/arjunms/maninventory-api/internal/domain/entity"
	infrarepo "github.com/arjunms/maninventory-api/internal/infrastructure/repository"
	"github.com/arjunms/maninventory-api/pkg/oauth"
	"github.com/arjunms/maninventory-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.User{}))

	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(infrarepo.NewUserRepository(db), jwtManager), db
}

func TestLoginWithGoogleCreatesAccount(t *testing.T) {
	svc, db := newAuthService(t)

	out, err := svc.LoginWithGoogle(context.Background(), &oauth.GoogleUserInfo{
		ID:         "google-123",
		Email:      "Asha@Example.com",
		GivenName:  "Asha",
		FamilyName: "Rao",
		Picture:    "https://example.com/p.jpg",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)

	var user entity.User
	require.NoError(t, db.First(&user, "email = ?", "asha@example.com").Error)
	assert.Equal(t, "google", user.Provider)
	require.NotNil(t, user.ProviderID)
	assert.Equal(t, "google-123", *user.ProviderID)
	require.NotNil(t, user.Photo)
}

func TestLoginWithGoogleLinksLocalAccount(t *testing.T) {
	svc, db := newAuthService(t)

	local := &entity.User{
		FirstName: "Asha",
		Email:     "asha@example.com",
		Password:  "hashed",
		Provider:  "local",
	}
	require.NoError(t, db.Create(local).Error)

	out, err := svc.LoginWithGoogle(context.Background(), &oauth.GoogleUserInfo{
		ID:    "google-123",
		Email: "asha@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, local.ID, out.User.ID)

	var user entity.User
	require.NoError(t, db.First(&user, "id = ?", local.ID).Error)
	assert.Equal(t, "google", user.Provider)
	require.NotNil(t, user.ProviderID)
	assert.Equal(t, "google-123", *user.ProviderID)

	var count int64
	db.Model(&entity.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestLoginWithGoogleRequiresEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.LoginWithGoogle(context.Background(), &oauth.GoogleUserInfo{ID: "google-123"})
	assert.Error(t, err)
}
