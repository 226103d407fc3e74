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
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/receipt-api/internal/application/service"
	"github.com/sangkips/receipt-api/internal/config"
	"github.com/sangkips/receipt-api/internal/domain/repository"
	"github.com/sangkips/receipt-api/internal/infrastructure/cache"
	"github.com/sangkips/receipt-api/internal/infrastructure/database"
	infraRepo "github.com/sangkips/receipt-api/internal/infrastructure/repository"
	"github.com/sangkips/receipt-api/internal/presentation/http/handler"
	"github.com/sangkips/receipt-api/internal/presentation/http/middleware"
	"github.com/sangkips/receipt-api/internal/presentation/http/routes"
	"github.com/sangkips/receipt-api/pkg/logger"
	"github.com/sangkips/receipt-api/pkg/printer"
	"github.com/sangkips/receipt-api/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zlog, err := logger.New(cfg.App.Env, cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync() //nolint:errcheck

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug, zlog)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db) //nolint:errcheck

	// Run auto-migrations
	if err := database.AutoMigrate(db, zlog); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize repositories
	userRepo := infraRepo.NewUserRepository(db)
	receiptRepo := infraRepo.NewReceiptRepository(db)
	idempotencyRepo := infraRepo.NewIdempotencyRepository(db)

	// Rendered receipt cache, optional
	textCache := cache.NewNullReceiptCache()
	if cfg.Cache.RedisAddr != "" {
		redisClient, err := cache.NewRedisClient(&cfg.Cache)
		if err != nil {
			zlog.Warn("redis unavailable, receipt text cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			textCache = cache.NewRedisReceiptCache(redisClient, cfg.Cache.TTL)
			zlog.Info("receipt text cache enabled", zap.String("addr", cfg.Cache.RedisAddr))
		}
	}

	layout, err := service.NewReceiptLayout(&cfg.Receipt)
	if err != nil {
		zlog.Fatal("invalid receipt layout", zap.Error(err))
	}
	widths := service.NewWidthBounds(&cfg.Receipt)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, zlog)
	receiptService := service.NewReceiptService(receiptRepo, textCache, layout, zlog)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		zlog.Warn("failed to initialize printer", zap.Error(err))
		thermalPrinter = printer.NewNullPrinter()
	}
	printerService := service.NewPrinterService(thermalPrinter, receiptService, cfg.Printer.Type, zlog)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Receipt: handler.NewReceiptHandler(receiptService, cfg.App.PublicBaseURL),
		Public:  handler.NewPublicHandler(receiptService, widths),
		Printer: handler.NewPrinterHandler(printerService, widths),
	}

	rateLimiter := middleware.NewRateLimiter(middleware.NewRateLimiterConfig(cfg.RateLimit.Requests, cfg.RateLimit.Duration))
	defer rateLimiter.Stop()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		Log:             zlog,
		UserRepo:        userRepo,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
		HealthCheck: func(ctx context.Context) error {
			return database.Ping(ctx, db)
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go runIdempotencyJanitor(ctx, idempotencyRepo, time.Hour, zlog)

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("server starting", zap.String("port", port), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server forced to shutdown", zap.Error(err))
	}
}

// runIdempotencyJanitor deletes expired idempotency keys until ctx is done
func runIdempotencyJanitor(ctx context.Context, repo repository.IdempotencyRepository, every time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.DeleteExpired(ctx)
			if err != nil {
				log.Warn("failed to delete expired idempotency keys", zap.Error(err))
				continue
			}
			if n > 0 {
				log.Info("deleted expired idempotency keys", zap.Int64("count", n))
			}
		}
	}
}
