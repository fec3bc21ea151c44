package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mdehtemam/bagquote-backend/config"
	"github.com/mdehtemam/bagquote-backend/internal/app/controller"
	"github.com/mdehtemam/bagquote-backend/internal/app/repository"
	"github.com/mdehtemam/bagquote-backend/internal/app/service"
	"github.com/mdehtemam/bagquote-backend/internal/db"
	"github.com/mdehtemam/bagquote-backend/internal/middleware"
	"github.com/mdehtemam/bagquote-backend/internal/notify"
	"github.com/mdehtemam/bagquote-backend/internal/router"
	"github.com/mdehtemam/bagquote-backend/internal/scheduler"
	"github.com/mdehtemam/bagquote-backend/internal/storage"
	"github.com/mdehtemam/bagquote-backend/pkg/logger"
	"github.com/mdehtemam/bagquote-backend/pkg/redis"
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

	logger.Info("Starting BAGQUOTE Backend Server", map[string]interface{}{
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

	// Seed database (optional)
	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Initialize Redis, which backs the quote cart
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to initialize Redis", err)
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	profileRepo := repository.NewProfileRepository(db.GetDB())
	roleRepo := repository.NewRoleRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	quoteRepo := repository.NewQuoteRepository(db.GetDB())
	contactRepo := repository.NewContactRepository(db.GetDB())
	cartStore := repository.NewRedisCartStore(redis.GetClient())

	// WebSocket hub for quote status pushes
	hub := notify.NewHub()
	go hub.Run()

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		profileRepo,
		roleRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	productService := service.NewProductService(productRepo, categoryRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	cartService := service.NewCartService(cartStore, productRepo)
	quoteService := service.NewQuoteService(quoteRepo, profileRepo, cartService, hub)
	contactService := service.NewContactService(contactRepo)
	exportService := service.NewExportService(quoteRepo)

	// S3 storage for product imagery uploads
	s3Storage := storage.NewS3Storage(&cfg.S3)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	productController := controller.NewProductController(productService)
	categoryController := controller.NewCategoryController(categoryService)
	cartController := controller.NewCartController(cartService)
	quoteController := controller.NewQuoteController(quoteService, exportService)
	contactController := controller.NewContactController(contactService)
	uploadController := controller.NewUploadController(s3Storage)
	notifyController := controller.NewNotifyController(hub)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Start the stale quote scheduler
	quoteScheduler := scheduler.NewQuoteScheduler(quoteService, cfg.Quote.StaleAfterDays)
	if err := quoteScheduler.Start(); err != nil {
		logger.Fatal("Failed to start quote scheduler", err)
	}
	defer quoteScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		productController,
		categoryController,
		cartController,
		quoteController,
		contactController,
		uploadController,
		notifyController,
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
