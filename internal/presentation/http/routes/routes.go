package routes

import (
	"time"

	"github.com/bizbooks/bizbooks-api/internal/config"
	domainRepo "github.com/bizbooks/bizbooks-api/internal/domain/repository"
	"github.com/bizbooks/bizbooks-api/internal/presentation/http/handler"
	"github.com/bizbooks/bizbooks-api/internal/presentation/http/middleware"
	"github.com/bizbooks/bizbooks-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	Transaction *handler.TransactionHandler
	Dashboard   *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	TokenManager    *utils.TokenManager
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

	// Public auth routes
	auth := router.Group("/api/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/logout", h.Auth.Logout)
		auth.POST("/password", h.Auth.ChangePassword)
	}

	// Protected routes: everything else requires the auth-token cookie.
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(deps.TokenManager))

	rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
		BurstSize:         deps.Cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})
	protected.Use(rateLimiter.Middleware())

	if deps.IdempotencyRepo != nil {
		protected.Use(middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}))
	}

	protected.GET("/auth/me", h.Auth.Me)

	protected.GET("/transactions", h.Transaction.List)
	protected.POST("/transactions", h.Transaction.Create)
	protected.PUT("/transactions/:id", h.Transaction.Update)
	protected.DELETE("/transactions/:id", h.Transaction.Delete)

	protected.GET("/dashboard", h.Dashboard.Get)

	return router
}
