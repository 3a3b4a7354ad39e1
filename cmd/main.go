package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pr-poehali-dev/food-delivery-django/internal/handler"
	"github.com/pr-poehali-dev/food-delivery-django/internal/repositories"
	"github.com/pr-poehali-dev/food-delivery-django/internal/router"
	"github.com/pr-poehali-dev/food-delivery-django/internal/service"
	"github.com/pr-poehali-dev/food-delivery-django/pkg/database"
	"github.com/pr-poehali-dev/food-delivery-django/pkg/envconfig"
	"github.com/pr-poehali-dev/food-delivery-django/pkg/flags"
	"github.com/pr-poehali-dev/food-delivery-django/pkg/logger"
	"github.com/pr-poehali-dev/food-delivery-django/pkg/shutdownsetup"
)

func main() {
	flagConfig := flags.Parse()

	if err := flagConfig.Validate(); err != nil {
		fmt.Printf("Configuration error: %v\n", err)
		return
	}

	envErr := envconfig.Load(".env")

	loggerConfig := logger.Config{
		Level:        envconfig.GetLogLevel(),
		Format:       envconfig.GetEnv("LOG_FORMAT", "json"),
		Output:       envconfig.GetEnv("LOG_OUTPUT", "stdout"),
		EnableCaller: envconfig.GetEnv("LOG_ENABLE_CALLER", "true") == "true",
		Environment:  envconfig.GetEnv("ENVIRONMENT", "development"),
	}

	appLogger := logger.New(loggerConfig)

	if envErr != nil {
		appLogger.Warn("Failed to load .env file", "error", envErr)
	} else {
		appLogger.Debug(".env file loaded successfully")
	}

	appLogger.Info("Starting food delivery API",
		"environment", loggerConfig.Environment,
		"log_level", loggerConfig.Level)

	dbConfig := envconfig.LoadDatabaseConfig()

	db, err := database.NewConnection(dbConfig, appLogger)
	if err != nil {
		// A missing or unreachable DATABASE_URL surfaces here; there
		// is no silent default to fall back to.
		appLogger.Fatal("Failed to establish database connection", "error", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := db.HealthCheck(); err != nil {
		appLogger.Error("Database health check failed", "error", err)
	} else {
		appLogger.Info("Database health check passed")
	}

	dishRepo := repositories.NewDishRepository(appLogger, db)
	orderRepo := repositories.NewOrderRepository(appLogger, db)

	dishService := service.NewDishService(dishRepo, appLogger)
	orderService := service.NewOrderService(orderRepo, appLogger)

	dishHandler := handler.NewDishHandler(dishService, appLogger)
	orderHandler := handler.NewOrderHandler(orderService, appLogger)

	mux := router.NewRouter(dishHandler, orderHandler, db, appLogger)

	httpHandler := appLogger.HTTPMiddleware(mux)

	initialPort := flagConfig.Port
	if initialPort == "" {
		initialPort = envconfig.GetEnv("PORT", "8080")
	}
	host := envconfig.GetEnv("HOST", "localhost")

	port := initialPort

	server := &http.Server{
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	maxRetries := 3
	for i := 0; i < maxRetries; i++ {
		server.Addr = host + ":" + port

		go func() {
			appLogger.Info("Starting HTTP server",
				"host", host,
				"port", port,
				"address", server.Addr)

			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				appLogger.Error("Server error", "error", err)
				serverErrors <- err
			}
		}()

		select {
		case err := <-serverErrors:
			if strings.Contains(err.Error(), "address already in use") && i < maxRetries-1 {
				portNum := 8080 + i + 1
				port = fmt.Sprintf("%d", portNum)
				appLogger.Warn("Port already in use, trying alternative port",
					"current_port", server.Addr,
					"next_port", port)
				continue
			} else {
				appLogger.Error("Failed to start server after retries", "error", err)
				return
			}
		case <-time.After(200 * time.Millisecond):
			appLogger.Info("Server started successfully", "port", port)
		}

		break
	}

	select {
	case err := <-serverErrors:
		appLogger.Error("Could not start server", "error", err)
		return
	default:
		shutdownsetup.SetupGracefulShutdown(server, appLogger)
	}
}
