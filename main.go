// main.go
package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"hotride-driver-api/config"
	"hotride-driver-api/controllers"
	"hotride-driver-api/middleware"
	"hotride-driver-api/routes"
	"hotride-driver-api/services"
	"hotride-driver-api/stores"
	"hotride-driver-api/utils"
)

// tokenTTL is how long issued access tokens stay valid.
const tokenTTL = 7 * 24 * time.Hour

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := newLogger(cfg.Debug)
	defer logger.Sync()

	// Connect to MongoDB; the client is lifecycle-scoped and injected below.
	ctx := context.Background()
	client, err := utils.ConnectDB(ctx, cfg.MongoURL)
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error("failed to disconnect from MongoDB", zap.Error(err))
		}
	}()
	logger.Info("connected to MongoDB", zap.String("database", cfg.MongoDBName))

	db := client.Database(cfg.MongoDBName)
	if err := utils.EnsureIndexes(ctx, db); err != nil {
		logger.Fatal("failed to create indexes", zap.Error(err))
	}

	// Stores
	driverStore := stores.NewDriverStore(db)
	bookingStore := stores.NewBookingStore(db)
	tokenStore := stores.NewResetTokenStore(db)

	// Services
	jwtManager := utils.NewJWTManager(cfg.JWTSecret, tokenTTL)
	fileService := services.NewFileService(cfg.UploadDir, cfg.MaxFileSize, cfg.AllowedExtensions, logger)
	emailService := services.NewEmailService(tokenStore, cfg.SendGridAPIKey, cfg.EmailSender, logger)
	registrationService := services.NewRegistrationService(driverStore, fileService, logger)
	authService := services.NewAuthService(driverStore, emailService, jwtManager, logger)
	dashboardService := services.NewDashboardService(driverStore, bookingStore, logger)

	// Controllers
	healthController := controllers.NewHealthController()
	registrationController := controllers.NewRegistrationController(registrationService, cfg.MaxFileSize, logger)
	authController := controllers.NewAuthController(authService, logger)
	dashboardController := controllers.NewDashboardController(dashboardService, logger)

	// Set up the router
	router := mux.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestLogger(logger))
	routes.RegisterRoutes(router, cfg.APIPrefix, cfg.APIKey, jwtManager,
		healthController, registrationController, authController, dashboardController)

	logger.Info("server is running", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(debug bool) *zap.Logger {
	if debug {
		logger, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		return logger
	}
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	return logger
}
