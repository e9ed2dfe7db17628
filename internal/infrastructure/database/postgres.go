package database

import (
	"fmt"
	"log"

	"github.com/arjunms/maninventory-api/internal/config"
	"github.com/arjunms/maninventory-api/internal/domain/entity"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// User-related entities
		&entity.User{},
		&entity.ShopSettings{},

		// Catalog entities
		&entity.Product{},

		// Sales entities
		&entity.CartItem{},
		&entity.Transaction{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData creates the owner account when configured via environment
// variables. Useful for fresh single-shop deployments.
func SeedDefaultData(db *gorm.DB) error {
	ownerEmail := viper.GetString("OWNER_EMAIL")
	ownerPassword := viper.GetString("OWNER_PASSWORD")
	ownerName := viper.GetString("OWNER_NAME")
	shopName := viper.GetString("SHOP_NAME")

	if ownerEmail == "" || ownerPassword == "" {
		return nil
	}

	var existing entity.User
	if err := db.Where("email = ?", ownerEmail).First(&existing).Error; err == nil {
		log.Printf("Owner user already exists: %s", ownerEmail)
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(ownerPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash owner password: %w", err)
	}

	if ownerName == "" {
		ownerName = "Shop Owner"
	}
	firstName := ownerName
	lastName := ""
	for i, c := range ownerName {
		if c == ' ' {
			firstName = ownerName[:i]
			lastName = ownerName[i+1:]
			break
		}
	}

	owner := entity.User{
		ID:        uuid.New(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     ownerEmail,
		Password:  string(hashedPassword),
		Provider:  "local",
	}
	if err := db.Create(&owner).Error; err != nil {
		return fmt.Errorf("failed to create owner user: %w", err)
	}
	log.Printf("Owner user created: %s", ownerEmail)

	if shopName != "" {
		settings := entity.ShopSettings{
			UserID:   owner.ID,
			ShopName: shopName,
		}
		if err := db.Create(&settings).Error; err != nil {
			log.Printf("Warning: failed to create shop settings: %v", err)
		}
	}

	return nil
}
