package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/connectchain/admin-api/internal/middleware"
	"github.com/connectchain/admin-api/kafka"
	"github.com/connectchain/admin-api/pkg/database"
	"github.com/connectchain/admin-api/pkg/logger"
	"github.com/connectchain/admin-api/pkg/media"
	"github.com/connectchain/admin-api/pkg/tracing"

	catHTTP "github.com/connectchain/admin-api/internal/category/delivery/http"
	catrepo "github.com/connectchain/admin-api/internal/category/repository"
	catcommand "github.com/connectchain/admin-api/internal/category/usecase/command"
	catquery "github.com/connectchain/admin-api/internal/category/usecase/query"

	prodHTTP "github.com/connectchain/admin-api/internal/product/delivery/http"
	prodrepo "github.com/connectchain/admin-api/internal/product/repository"
	prodcommand "github.com/connectchain/admin-api/internal/product/usecase/command"
	prodquery "github.com/connectchain/admin-api/internal/product/usecase/query"

	userHTTP "github.com/connectchain/admin-api/internal/user/delivery/http"
	userrepo "github.com/connectchain/admin-api/internal/user/repository"
	usercommand "github.com/connectchain/admin-api/internal/user/usecase/command"
	userquery "github.com/connectchain/admin-api/internal/user/usecase/query"

	orderHTTP "github.com/connectchain/admin-api/internal/order/delivery/http"
	orderrepo "github.com/connectchain/admin-api/internal/order/repository"
	ordercommand "github.com/connectchain/admin-api/internal/order/usecase/command"
	orderquery "github.com/connectchain/admin-api/internal/order/usecase/query"
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "connectchain-admin")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Msg("Starting admin API")

	// Initialize tracing
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Failed to initialize tracer, continuing without tracing")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Warn().Err(err).Msg("Failed to shut down tracer")
			}
		}()
	}

	// Load database configuration
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "connectchain"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Connect to database with GORM
	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// The order repository runs raw SQL over its own lib/pq connection pool
	orderDB, err := database.NewPostgresConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect order database pool")
	}
	defer orderDB.Close()

	// Initialize repositories
	productRepo := prodrepo.NewGormProductRepositoryWithTracing(db)
	categoryRepo := catrepo.NewGormCategoryRepository(db)
	userRepo := userrepo.NewGormUserRepository(db)
	orderRepo := orderrepo.NewPostgresOrderRepository(orderDB)

	// Run migrations
	if err := categoryRepo.AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run category migrations")
	}
	if err := userRepo.AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run user migrations")
	}
	if err := prodrepo.NewGormProductRepository(db).AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run product migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Media storage for product images
	storage := media.NewHTTPStorage(
		getEnv("MEDIA_BASE_URL", "http://localhost:9000"),
		getEnv("MEDIA_API_KEY", ""),
	)

	// Kafka publisher, optional
	var events *kafka.Publisher
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		events, err = kafka.NewPublisher([]string{brokers})
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Failed to connect to Kafka, continuing without events")
			events = nil
		} else {
			defer events.Close()
			logger.Logger.Info().Str("brokers", brokers).Msg("Kafka publisher connected")
		}
	}

	// Query handlers double as reference checkers for product commands
	getCategoryHandler := catquery.NewGetCategoryHandler(categoryRepo)
	getUserHandler := userquery.NewGetUserHandler(userRepo)

	// publisher decouples the nil-publisher case from the interface
	var publisher prodcommand.EventPublisher
	var catPublisher catcommand.EventPublisher
	var orderPublisher ordercommand.EventPublisher
	if events != nil {
		publisher = events
		catPublisher = events
		orderPublisher = events
	}

	productHandler := prodHTTP.NewProductHandler(
		prodcommand.NewCreateProductHandler(productRepo, getCategoryHandler, getUserHandler, storage, publisher),
		prodcommand.NewUpdateProductHandler(productRepo, getCategoryHandler, getUserHandler, storage, publisher),
		prodcommand.NewDeleteProductHandler(productRepo, publisher),
		prodquery.NewGetProductHandler(productRepo),
		prodquery.NewListProductsHandler(productRepo),
		metrics(),
	)

	categoryHandler := catHTTP.NewCategoryHandler(
		catcommand.NewCreateCategoryHandler(categoryRepo),
		catcommand.NewUpdateCategoryHandler(categoryRepo),
		catcommand.NewSetCategoryStatusHandler(categoryRepo, catPublisher),
		catcommand.NewDeleteCategoryHandler(categoryRepo),
		getCategoryHandler,
		catquery.NewListCategoriesHandler(categoryRepo),
		metrics(),
	)

	userHandler := userHTTP.NewUserHandler(
		usercommand.NewCreateUserHandler(userRepo),
		usercommand.NewUpdateUserHandler(userRepo),
		usercommand.NewToggleActiveHandler(userRepo),
		getUserHandler,
		userquery.NewListUsersHandler(userRepo),
		metrics(),
	)

	orderHandler := orderHTTP.NewOrderHandler(
		ordercommand.NewUpdateOrderStatusHandler(orderRepo, orderPublisher),
		orderquery.NewGetOrderHandler(orderRepo),
		orderquery.NewListOrdersHandler(orderRepo),
		metrics(),
	)

	// Setup router with the shared middleware stack
	router := mux.NewRouter()
	middleware.Register(router, middleware.DefaultConfig())

	// Rate limiting, optional
	if addr := getEnv("REDIS_ADDR", ""); addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: getEnv("REDIS_PASSWORD", ""),
		})
		maxRequests := getEnvInt("RATE_LIMIT_MAX", 100)
		limiter := middleware.NewRateLimiter(redisClient, maxRequests, time.Minute)
		router.Use(limiter.Middleware())
		logger.Logger.Info().Str("redis", addr).Int("max_per_minute", maxRequests).Msg("Rate limiting enabled")
	}

	productHandler.RegisterRoutes(router)
	categoryHandler.RegisterRoutes(router)
	userHandler.RegisterRoutes(router)
	orderHandler.RegisterRoutes(router)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := sqlDB.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods("GET")

	corsHandler := middleware.SetupCORS(middleware.DefaultConfig())

	httpPort := getEnv("HTTP_PORT", "8080")
	server := &http.Server{
		Addr:    ":" + httpPort,
		Handler: corsHandler(router),
	}

	go func() {
		logger.Logger.Info().
			Str("port", httpPort).
			Str("metrics_endpoint", "/metrics").
			Msg("HTTP server started")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server shutdown failed")
	}
}

var sharedMetrics *middleware.Metrics

// metrics returns the process-wide metrics registry; Prometheus collectors
// can only be registered once
func metrics() *middleware.Metrics {
	if sharedMetrics == nil {
		sharedMetrics = middleware.NewMetrics()
	}
	return sharedMetrics
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
