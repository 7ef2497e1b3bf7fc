package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/YashSurve2006/Inventory-Management-Website/internal/config"
	httpdelivery "github.com/YashSurve2006/Inventory-Management-Website/internal/delivery/http"
	"github.com/YashSurve2006/Inventory-Management-Website/internal/logging"
	"github.com/YashSurve2006/Inventory-Management-Website/internal/messaging"
	"github.com/YashSurve2006/Inventory-Management-Website/internal/messaging/kafka"
	"github.com/YashSurve2006/Inventory-Management-Website/internal/metrics"
	"github.com/YashSurve2006/Inventory-Management-Website/internal/repository/postgres"
	"github.com/YashSurve2006/Inventory-Management-Website/internal/service"
)

func main() {
	cfg := config.Load()

	logger := logging.MustNewLogger("inventory-api", cfg.Env)
	defer logger.Sync()

	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET must be set")
	}

	metrics.MustRegister()

	// --- Database ---
	db, err := postgres.InitDB(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to init database", zap.Error(err))
	}
	defer db.Close()
	logger.Info("database connected and migrated")

	// --- Redis (optional: caching + rate limiting) ---
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warn("failed to connect to redis, caching disabled", zap.Error(err))
			redisClient = nil
		} else {
			logger.Info("redis connected", zap.String("addr", cfg.RedisAddr))
		}
	}

	// --- Kafka (optional: domain events) ---
	var publisher messaging.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher = kafka.NewPublisher(cfg.KafkaBrokers)
		logger.Info("kafka publisher configured", zap.Strings("brokers", cfg.KafkaBrokers))
	}

	// --- Repositories ---
	store := postgres.NewStore(db)
	productRepo := postgres.NewProductRepository(db)
	cartRepo := postgres.NewCartRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	stockRepo := postgres.NewStockRepository(db)
	supplierRepo := postgres.NewSupplierRepository(db)
	userRepo := postgres.NewUserRepository(db)
	reportRepo := postgres.NewReportRepository(db)

	// --- Services ---
	services := httpdelivery.Services{
		Auth:      service.NewAuthService(userRepo, cfg.JWTSecret, logger),
		Products:  service.NewProductService(productRepo, redisClient, logger),
		Cart:      service.NewCartService(cartRepo, productRepo, logger),
		Orders:    service.NewOrderService(store, orderRepo, publisher, logger),
		Stock:     service.NewStockService(store, stockRepo, publisher, logger),
		Suppliers: service.NewSupplierService(supplierRepo, logger),
		Users:     service.NewUserService(userRepo, logger),
		Reports:   service.NewReportService(reportRepo, logger),
	}

	// --- HTTP ---
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	handler := httpdelivery.NewHandler(services, cfg.JWTSecret, redisClient, logger)
	handler.RegisterRoutes(router)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		logger.Info("http server starting", zap.String("port", cfg.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", zap.Error(err))
	}
}
