package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ravelt/retailpos-backend/config"
	"github.com/ravelt/retailpos-backend/internal/app/controller"
	"github.com/ravelt/retailpos-backend/internal/app/repository"
	"github.com/ravelt/retailpos-backend/internal/app/service"
	"github.com/ravelt/retailpos-backend/internal/db"
	"github.com/ravelt/retailpos-backend/internal/middleware"
	"github.com/ravelt/retailpos-backend/internal/router"
	"github.com/ravelt/retailpos-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting RetailPOS Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	gormDB := db.GetDB()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	branchRepo := repository.NewBranchRepository(gormDB)
	storeRepo := repository.NewStoreRepository(gormDB)
	inventoryRepo := repository.NewInventoryRepository(gormDB)
	itemRepo := repository.NewItemRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	transactionRepo := repository.NewTransactionRepository(gormDB)

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	userService := service.NewUserService(userRepo)
	branchService := service.NewBranchService(branchRepo, gormDB)
	storeService := service.NewStoreService(storeRepo, branchRepo, userRepo, gormDB)
	inventoryService := service.NewInventoryService(inventoryRepo, itemRepo, gormDB)
	itemService := service.NewItemService(itemRepo, categoryRepo)
	categoryService := service.NewCategoryService(categoryRepo, gormDB)
	transactionService := service.NewTransactionService(transactionRepo, inventoryRepo, userRepo, gormDB)

	// Initialize controllers
	userController := controller.NewUserController(authService, userService)
	branchController := controller.NewBranchController(branchService)
	storeController := controller.NewStoreController(storeService)
	inventoryController := controller.NewInventoryController(inventoryService)
	itemController := controller.NewItemController(itemService)
	categoryController := controller.NewCategoryController(categoryService)
	transactionController := controller.NewTransactionController(transactionService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, gormDB)

	// Setup router
	r := router.NewRouter(
		userController,
		branchController,
		storeController,
		inventoryController,
		itemController,
		categoryController,
		transactionController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
