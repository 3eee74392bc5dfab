package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dinesmart/app/echo-server/router"
	"dinesmart/business/admin"
	"dinesmart/business/auth"
	"dinesmart/business/catalog"
	"dinesmart/business/orders"
	"dinesmart/business/reco"
	"dinesmart/internal/middleware"
	"dinesmart/internal/repository/notification"
	psqlRepo "dinesmart/internal/repository/postgres"
	redisRepo "dinesmart/internal/repository/redis"
	"dinesmart/internal/repository/storage"
	"dinesmart/internal/rest"
	"dinesmart/pkg/config"
	"dinesmart/pkg/database"
	redisdb "dinesmart/pkg/database/redis"
	"dinesmart/pkg/logger"
	"dinesmart/pkg/metrics"
	"dinesmart/pkg/utils"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting DineSmart", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey, time.Duration(cfg.JWT.TTLHours)*time.Hour)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to redis", "error", err)
	}
	defer redisdb.CloseRedisClient(redisClient)

	logger.Info("Redis connected successfully")

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	restaurantRepo := psqlRepo.NewRestaurantRepository(db)
	menuRepo := psqlRepo.NewMenuRepository(db)
	ordersRepo := psqlRepo.NewOrdersRepository(db)
	resetRepo := psqlRepo.NewPasswordResetRepository(db)
	logRepo := psqlRepo.NewAdminLogRepository(db)
	tokenRepo := redisRepo.NewTokenRepository(redisClient)
	imageRepo := storage.NewLocalImageRepository(cfg.Upload.Dir, cfg.Upload.BaseURL)

	// Init service
	authService := auth.NewAuthService(userRepo, resetRepo, tokenRepo, mailjetEmail, cfg.App.Environment)
	ordersService := orders.NewOrdersService(ordersRepo, restaurantRepo, menuRepo)
	catalogService := catalog.NewCatalogService(restaurantRepo, menuRepo)
	recoService := reco.NewService(menuRepo)
	adminService := admin.NewAdminService(userRepo, restaurantRepo, ordersRepo, logRepo)

	// Init handler
	authHandler := rest.NewAuthHandler(authService)
	customerHandler := rest.NewCustomerHandler(catalogService, ordersService, recoService)
	sellerHandler := rest.NewSellerHandler(catalogService, ordersService, imageRepo)
	adminHandler := rest.NewAdminHandler(adminService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Auth middleware
	authRequired := middleware.Auth(authService)
	customerOnly := middleware.RequireRole("CUSTOMER")
	sellerOnly := middleware.RequireRole("SELLER")
	adminOnly := middleware.RequireRole("ADMIN")

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupAuthRoutes(api, authHandler, authRequired)
	router.SetupCustomerRoutes(api, customerHandler, authRequired, customerOnly)
	router.SetupSellerRoutes(api, sellerHandler, authRequired, sellerOnly)
	router.SetupAdminRoutes(api, adminHandler, authRequired, adminOnly)

	// Uploaded images and prometheus scrape endpoint
	e.Static(cfg.Upload.BaseURL, cfg.Upload.Dir)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
