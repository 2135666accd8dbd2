package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	accountUseCase "github.com/aryaseta/reward-engine/internal/domain/usecase/account"
	claimUseCase "github.com/aryaseta/reward-engine/internal/domain/usecase/claim"
	investUseCase "github.com/aryaseta/reward-engine/internal/domain/usecase/invest"
	rewardUseCase "github.com/aryaseta/reward-engine/internal/domain/usecase/reward"

	"github.com/aryaseta/reward-engine/internal/infrastructure/adapter/api/handler"
	"github.com/aryaseta/reward-engine/internal/infrastructure/adapter/api/routes"
	"github.com/aryaseta/reward-engine/internal/infrastructure/adapter/database"
	"github.com/aryaseta/reward-engine/internal/infrastructure/adapter/database/migration"
	"github.com/aryaseta/reward-engine/internal/infrastructure/adapter/logger"
	"github.com/aryaseta/reward-engine/internal/infrastructure/adapter/repository"
	timeProvider "github.com/aryaseta/reward-engine/internal/infrastructure/adapter/time"
	"github.com/aryaseta/reward-engine/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate essential configuration
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)
	appLogger.SetLevel(logger.ParseLevel(cfg.Logger.Level))
	defer func() { _ = appLogger.Flush() }()

	// Resolve the business timezone for the daily claim gate
	businessLocation, err := cfg.BusinessLocation()
	if err != nil {
		appLogger.Error("Failed to load business timezone", map[string]any{
			"timezone": cfg.Reward.Timezone,
			"error":    err.Error(),
		})
		os.Exit(1)
	}

	// Setup database configuration
	dbConfig := &database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		LogLevel:        cfg.Logger.Level,
		RetryAttempts:   cfg.Database.RetryAttempts,
		RetryDelay:      cfg.Database.RetryDelay,
	}

	// Initialize time provider
	tp := timeProvider.NewRealTimeProvider()

	// Connect to the database
	dbManager := database.NewManager(dbConfig, appLogger)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() { _ = dbManager.Close() }()

	// Run migrations and seed the product catalog
	migrationMgr := migration.NewManager(dbManager.DB(), appLogger)
	if err := migrationMgr.MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	if err := migration.SeedDefaultProducts(dbManager.DB()); err != nil {
		appLogger.Error("Failed to seed default products", map[string]any{
			"error": err.Error(),
		})
	}

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(dbManager.DB(), tp, appLogger)
	investmentRepo := repository.NewInvestmentRepository(dbManager.DB(), appLogger)
	transactionRepo := repository.NewTransactionRepository(dbManager.DB(), appLogger)
	productRepo := repository.NewProductRepository(dbManager.DB(), appLogger)

	// Unit of work (transaction manager)
	uow := database.NewUnitOfWork(dbManager.DB(), appLogger, tp)

	// Initialize use cases
	rewardService := rewardUseCase.NewService(accountRepo, uow, tp, appLogger)
	accountService := accountUseCase.NewService(uow, accountRepo, transactionRepo, tp, appLogger)
	investService := investUseCase.NewService(uow, productRepo, rewardService, tp, appLogger)
	claimService := claimUseCase.NewService(uow, investmentRepo, rewardService, businessLocation, tp, appLogger)

	// Initialize API handlers
	accountHandler := handler.NewAccountHandler(accountService, appLogger)
	investHandler := handler.NewInvestHandler(investService, appLogger)
	claimHandler := handler.NewClaimHandler(claimService, appLogger)

	// Initialize Gin router
	router := gin.New()

	// Setup middlewares
	routes.SetupMiddlewares(router, appLogger)

	// Setup routes
	routes.SetupRoutes(router, accountHandler, investHandler, claimHandler)

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port":     cfg.Server.Port,
			"env":      cfg.Environment,
			"timezone": cfg.Reward.Timezone,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Database.Host == "" {
		missingConfigs = append(missingConfigs, "database.host")
	}
	if cfg.Database.Username == "" {
		missingConfigs = append(missingConfigs, "database.username")
	}
	if cfg.Database.Database == "" {
		missingConfigs = append(missingConfigs, "database.database")
	}
	if cfg.Reward.Timezone == "" {
		missingConfigs = append(missingConfigs, "reward.timezone")
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missingConfigs, ", "))
	}
	return nil
}
