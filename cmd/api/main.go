package main

import (
	"log"
	"os"

	"github.com/arjunms/maninventory-api/internal/application/service"
	"github.com/arjunms/maninventory-api/internal/config"
	"github.com/arjunms/maninventory-api/internal/infrastructure/aigateway"
	"github.com/arjunms/maninventory-api/internal/infrastructure/database"
	"github.com/arjunms/maninventory-api/internal/infrastructure/repository"
	"github.com/arjunms/maninventory-api/internal/presentation/http/handler"
	"github.com/arjunms/maninventory-api/internal/presentation/http/routes"
	"github.com/arjunms/maninventory-api/pkg/oauth"
	"github.com/arjunms/maninventory-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	cartRepo := repository.NewCartRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Initialize AI gateway client
	aiGateway := aigateway.NewClient(&cfg.AI)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	productService := service.NewProductService(productRepo)
	cartService := service.NewCartService(cartRepo, productRepo)
	checkoutService := service.NewCheckoutService(productRepo, transactionRepo, cartRepo, settingsRepo)
	transactionService := service.NewTransactionService(transactionRepo)
	receiptService := service.NewReceiptService(transactionRepo, settingsRepo, cfg.Billing.Currency)
	settingsService := service.NewSettingsService(settingsRepo)
	dashboardService := service.NewDashboardService(analyticsRepo, productRepo, transactionRepo)
	aiService := service.NewAIService(aiGateway, productRepo, analyticsRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService, googleOAuthService),
		Product:     handler.NewProductHandler(productService),
		Checkout:    handler.NewCheckoutHandler(checkoutService, productService, receiptService, settingsService, cfg.Billing.TaxRate),
		Transaction: handler.NewTransactionHandler(transactionService, receiptService, settingsService),
		Cart:        handler.NewCartHandler(cartService),
		Settings:    handler.NewSettingsHandler(settingsService),
		Dashboard:   handler.NewDashboardHandler(dashboardService),
		AI:          handler.NewAIHandler(aiService, dashboardService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
