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

	"github.com/joho/godotenv"
	memorycache "github.com/muskan-fatima97/ClassyShop/internal/adapter/cache/memory"
	rediscache "github.com/muskan-fatima97/ClassyShop/internal/adapter/cache/redis"
	mongoadapter "github.com/muskan-fatima97/ClassyShop/internal/adapter/mongo"
	natsadapter "github.com/muskan-fatima97/ClassyShop/internal/adapter/nats"
	"github.com/muskan-fatima97/ClassyShop/internal/config"
	"github.com/muskan-fatima97/ClassyShop/internal/handler"
	"github.com/muskan-fatima97/ClassyShop/internal/mailer"
	"github.com/muskan-fatima97/ClassyShop/internal/platform/auth"
	"github.com/muskan-fatima97/ClassyShop/internal/platform/logger"
	"github.com/muskan-fatima97/ClassyShop/internal/platform/metrics"
	"github.com/muskan-fatima97/ClassyShop/internal/port/cache"
	"github.com/muskan-fatima97/ClassyShop/internal/repository"
	"github.com/muskan-fatima97/ClassyShop/internal/router"
	"github.com/muskan-fatima97/ClassyShop/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Can't initialize zap logger: %v", err)
	}
	defer zapLogger.Sync()

	mongoClient, err := mongoadapter.NewMongoDBConnection(cfg.MongoURI)
	if err != nil {
		zapLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			zapLogger.Error("Failed to disconnect MongoDB", zap.Error(err))
		}
	}()
	db := mongoClient.Database(cfg.MongoDatabase)

	// One cache instance per resource type so a flush for one resource
	// never evicts another's entries.
	categoryCache, brandCache, productCache, err := buildCaches(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize cache", zap.Error(err))
	}

	var publisher *natsadapter.Publisher
	if cfg.NATSURL != "" {
		publisher, err = natsadapter.NewNATSPublisher(cfg.NATSURL, zapLogger)
		if err != nil {
			zapLogger.Fatal("Failed to connect to NATS", zap.Error(err))
		}
		defer publisher.Close()
	}

	metricsManager := metrics.NewManager("classyshop")
	if cfg.MetricsPort != "" {
		go func() {
			if err := metrics.StartServer(cfg.MetricsPort, zapLogger, metricsManager.Registry); err != nil && err != http.ErrServerClosed {
				zapLogger.Error("Metrics server failed", zap.Error(err))
			}
		}()
	}

	userRepo := repository.NewUserRepository(db, zapLogger)
	categoryRepo := repository.NewCategoryRepository(db, zapLogger)
	brandRepo := repository.NewBrandRepository(db, zapLogger)
	productRepo := repository.NewProductRepository(db, zapLogger)
	orderRepo := repository.NewOrderRepository(db, zapLogger)
	txnRunner := repository.NewMongoTxnRunner(mongoClient, zapLogger)

	hasher := auth.NewBcryptHasher()
	tokens := auth.NewTokenManager(cfg.JWTSecret)
	smtpMailer := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword, zapLogger)

	authUsecase := usecase.NewAuthUsecase(userRepo, txnRunner, hasher, tokens, smtpMailer, usecase.AuthConfig{
		FrontendURL:   cfg.FrontendURL,
		TokenTTL:      cfg.JWTExpiry,
		ResetTokenTTL: cfg.ResetTokenTTL,
	}, zapLogger)
	categoryUsecase := usecase.NewCategoryUsecase(categoryRepo, txnRunner, categoryCache, metricsManager, cfg.CacheTTL, zapLogger)
	brandUsecase := usecase.NewBrandUsecase(brandRepo, txnRunner, brandCache, metricsManager, cfg.CacheTTL, zapLogger)
	var orderPublisher usecase.OrderEventPublisher
	var catalogPublisher usecase.CatalogEventPublisher
	if publisher != nil {
		orderPublisher = publisher
		catalogPublisher = publisher
	}
	productUsecase := usecase.NewProductUsecase(productRepo, categoryRepo, brandRepo, txnRunner, productCache, metricsManager, catalogPublisher, cfg.CacheTTL, zapLogger)
	orderUsecase := usecase.NewOrderUsecase(orderRepo, userRepo, txnRunner, orderPublisher, zapLogger)
	userUsecase := usecase.NewUserUsecase(userRepo, zapLogger)

	handlers := router.Handlers{
		Auth:     handler.NewAuthHandler(authUsecase, zapLogger),
		Category: handler.NewCategoryHandler(categoryUsecase, zapLogger),
		Brand:    handler.NewBrandHandler(brandUsecase, zapLogger),
		Product:  handler.NewProductHandler(productUsecase, zapLogger),
		Order:    handler.NewOrderHandler(orderUsecase, zapLogger),
		User:     handler.NewUserHandler(userUsecase, zapLogger),
	}

	mux := router.New(handlers, router.Deps{
		Tokens:     tokens,
		Users:      userRepo,
		Metrics:    metricsManager,
		Logger:     zapLogger,
		UploadsDir: cfg.UploadsDir,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      mux,
		ReadTimeout:  cfg.RequestTimeout,
		WriteTimeout: cfg.RequestTimeout,
	}

	go func() {
		zapLogger.Info("Starting HTTP server", zap.Int("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	zapLogger.Info("Server exited")
}

// buildCaches picks the configured cache driver. The memory driver is
// the default; redis shares one client across per-resource prefixes.
func buildCaches(cfg *config.Config, zapLogger *zap.Logger) (cache.CacheRepository, cache.CacheRepository, cache.CacheRepository, error) {
	if cfg.CacheDriver == "redis" {
		client, err := rediscache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, zapLogger)
		if err != nil {
			return nil, nil, nil, err
		}
		return rediscache.NewRedisCacheRepository(client, "category", zapLogger),
			rediscache.NewRedisCacheRepository(client, "brand", zapLogger),
			rediscache.NewRedisCacheRepository(client, "product", zapLogger),
			nil
	}
	return memorycache.NewCache(), memorycache.NewCache(), memorycache.NewCache(), nil
}
