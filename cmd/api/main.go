package main

import (
	"context"
	"log"
	"time"

	"github.com/bizbooks/bizbooks-api/internal/application/service"
	"github.com/bizbooks/bizbooks-api/internal/config"
	"github.com/bizbooks/bizbooks-api/internal/infrastructure/database"
	"github.com/bizbooks/bizbooks-api/internal/infrastructure/repository"
	"github.com/bizbooks/bizbooks-api/internal/presentation/http/handler"
	"github.com/bizbooks/bizbooks-api/internal/presentation/http/routes"
	"github.com/bizbooks/bizbooks-api/pkg/utils"
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

	// Apply schema migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the default login user
	if err := database.SeedDefaultUser(db); err != nil {
		log.Printf("Warning: Failed to seed default user: %v", err)
	}

	// Initialize session token manager
	tokenManager := utils.NewTokenManager(cfg.Auth.TokenSecret, cfg.Auth.TokenExpiry)

	// Initialize repositories
	queryTimeout := cfg.Database.QueryTimeout
	userRepo := repository.NewUserRepository(db, queryTimeout)
	transactionRepo := repository.NewTransactionRepository(db, queryTimeout)
	sequenceRepo := repository.NewSequenceRepository(db, queryTimeout)
	idempotencyRepo := repository.NewIdempotencyRepository(db, queryTimeout)

	// Expired idempotency keys only waste space; sweep them in the background.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := idempotencyRepo.DeleteExpired(context.Background()); err != nil {
				log.Printf("Warning: Failed to clean up idempotency keys: %v", err)
			}
		}
	}()

	// Initialize services
	authService := service.NewAuthService(userRepo, tokenManager)
	billingService := service.NewBillNumberService(sequenceRepo)
	transactionService := service.NewTransactionService(transactionRepo, billingService)
	dashboardService := service.NewDashboardService(transactionRepo)

	// Initialize handlers. The cookie lives exactly as long as the token it
	// carries.
	cookieMaxAge := int(tokenManager.Expiry().Seconds())
	secureCookie := cfg.App.Env == "production"
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService, cookieMaxAge, secureCookie),
		Transaction: handler.NewTransactionHandler(transactionService),
		Dashboard:   handler.NewDashboardHandler(dashboardService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		TokenManager:    tokenManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
