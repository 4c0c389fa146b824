package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segyhp/lamf-engine/internal/config"
	"github.com/segyhp/lamf-engine/internal/handler"
	"github.com/segyhp/lamf-engine/internal/repository"
	"github.com/segyhp/lamf-engine/internal/service"
	"github.com/segyhp/lamf-engine/pkg/appnumber"
	"github.com/segyhp/lamf-engine/pkg/logger"
	"github.com/segyhp/lamf-engine/pkg/validation"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logr, err := logger.New(cfg.Logging.Level, cfg.Logging.Format, "lamf-api")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logr.Sync()
	zap.ReplaceGlobals(logr)

	// Amounts go out as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	// Initialize database
	db, err := initDB(cfg)
	if err != nil {
		logr.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := repository.Migrate(context.Background(), db); err != nil {
			logr.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	// Initialize Redis
	redisClient, err := initRedis(cfg)
	if err != nil {
		logr.Fatal("Failed to initialize redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Initialize repositories and services
	store := repository.NewStore(db)
	validator := validation.New()

	productService := service.NewProductService(
		store.Repos().Products,
		service.NewRedisProductCache(redisClient, cfg.GetProductCacheTTL()),
		validator,
		logr.Named("products"),
	)
	applicationService := service.NewApplicationService(
		store,
		productService,
		service.NewPricingEngine(),
		appnumber.New(cfg.Business.ApplicationNumberPrefix),
		validator,
		service.ApplicationOptions{
			NumberAttempts:     cfg.Business.ApplicationNumberAttempts,
			EnforceTransitions: cfg.Business.EnforceStatusTransitions,
		},
		logr.Named("applications"),
	)
	collateralService := service.NewCollateralService(store, validator, logr.Named("collaterals"))

	// Setup routes
	router := handler.NewRouter(handler.Handlers{
		Health: handler.NewHealthHandler(cfg.GetHealthTimeout(), map[string]handler.Pinger{
			"database": store,
			"redis": handler.PingFunc(func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			}),
		}),
		Product:     handler.NewProductHandler(productService),
		Application: handler.NewApplicationHandler(applicationService),
		Collateral:  handler.NewCollateralHandler(collateralService),
	}, []byte(cfg.Auth.JWTSecret), logr.Named("http"))

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.GetReadTimeout(),
		WriteTimeout: cfg.GetWriteTimeout(),
	}

	// Start server in a goroutine
	go func() {
		logr.Info("Server starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logr.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logr.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logr.Info("Server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect(cfg.Database.Driver, cfg.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

func initRedis(cfg *config.Config) (*redis.Client, error) {
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return nil, err
		}
		return redis.NewClient(opts), nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}), nil
}
