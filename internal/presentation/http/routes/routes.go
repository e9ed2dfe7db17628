package routes

import (
	"time"

	"github.com/arjunms/maninventory-api/internal/config"
	domainRepo "github.com/arjunms/maninventory-api/internal/domain/repository"
	"github.com/arjunms/maninventory-api/internal/presentation/http/handler"
	"github.com/arjunms/maninventory-api/internal/presentation/http/middleware"
	"github.com/arjunms/maninventory-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	Product     *handler.ProductHandler
	Checkout    *handler.CheckoutHandler
	Transaction *handler.TransactionHandler
	Cart        *handler.CartHandler
	Settings    *handler.SettingsHandler
	Dashboard   *handler.DashboardHandler
	AI          *handler.AIHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleAuth)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Settings
	protected.GET("/settings", h.Settings.GetSettings)
	protected.PUT("/settings", h.Settings.UpdateSettings)

	// Dashboard and analytics
	protected.GET("/dashboard", h.Dashboard.GetStats)
	protected.GET("/analytics", h.Dashboard.GetAnalytics)

	// Products
	registerProductRoutes(protected, h)

	// Cart
	registerCartRoutes(protected, h)

	// Checkout
	registerCheckoutRoutes(protected, h, deps)

	// Transactions
	registerTransactionRoutes(protected, h)

	// Assistant
	registerAIRoutes(protected, h)
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.POST("/import", h.Product.Import)
		products.GET("/low-stock", h.Product.GetLowStock)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
		products.POST("/:id/restock", h.Product.Restock)
	}
}

func registerCartRoutes(protected *gin.RouterGroup, h *Handlers) {
	cart := protected.Group("/cart")
	{
		cart.GET("", h.Cart.List)
		cart.POST("", h.Cart.Add)
		cart.PUT("/:productId", h.Cart.Update)
		cart.DELETE("/:productId", h.Cart.Remove)
		cart.DELETE("", h.Cart.Clear)
	}
}

func registerCheckoutRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Settlement uses idempotency middleware so a retried request can never
	// record the sale twice
	protected.POST("/checkout", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	}), h.Checkout.Checkout)
}

func registerTransactionRoutes(protected *gin.RouterGroup, h *Handlers) {
	transactions := protected.Group("/transactions")
	{
		transactions.GET("", h.Transaction.List)
		transactions.GET("/:id", h.Transaction.Get)
		transactions.GET("/:id/receipt", h.Transaction.GetReceipt)
	}
}

func registerAIRoutes(protected *gin.RouterGroup, h *Handlers) {
	ai := protected.Group("/ai")
	{
		ai.GET("/restock-suggestions", h.AI.GetRestockSuggestions)
		ai.POST("/insights", h.AI.GetInsights)
		ai.POST("/extract-products", h.AI.ExtractProducts)
	}
}
