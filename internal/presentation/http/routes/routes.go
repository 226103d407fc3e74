package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/receipt-api/internal/config"
	domainRepo "github.com/sangkips/receipt-api/internal/domain/repository"
	"github.com/sangkips/receipt-api/internal/presentation/http/handler"
	"github.com/sangkips/receipt-api/internal/presentation/http/middleware"
	"github.com/sangkips/receipt-api/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Receipt *handler.ReceiptHandler
	Public  *handler.PublicHandler
	Printer *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	Log             *zap.Logger
	UserRepo        domainRepo.UserRepository
	IdempotencyRepo domainRepo.IdempotencyRepository
	// RateLimiter is shared by all rate limited routes; its owner stops it.
	RateLimiter *middleware.RateLimiter
	// HealthCheck reports whether the backing store is reachable.
	HealthCheck func(ctx context.Context) error
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		status, code := "ok", http.StatusOK
		if deps.HealthCheck != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := deps.HealthCheck(ctx); err != nil {
				deps.Log.Error("health check failed", zap.Error(err))
				status, code = "unavailable", http.StatusServiceUnavailable
			}
		}
		c.JSON(code, gin.H{
			"status":  status,
			"service": deps.Cfg.App.Name,
		})
	})

	// Public receipt view, rate limited per client address
	router.GET("/public/receipt/:token",
		deps.RateLimiter.Middleware(middleware.ByClientIP),
		h.Public.ViewReceipt,
	)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager, deps.UserRepo))
		protected.Use(deps.RateLimiter.Middleware(middleware.ByUser))

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(rg *gin.RouterGroup, h *Handlers) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(rg *gin.RouterGroup, h *Handlers, deps *Deps) {
	rg.GET("/profile", h.Auth.GetProfile)

	receipts := rg.Group("/receipts")
	{
		receipts.POST("",
			middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo, Log: deps.Log}),
			h.Receipt.Create,
		)
		receipts.GET("", h.Receipt.List)
		receipts.GET("/:id", h.Receipt.Get)
		receipts.POST("/:id/print", h.Printer.PrintReceipt)
	}

	printer := rg.Group("/printer")
	{
		printer.GET("/status", h.Printer.GetStatus)
		printer.POST("/test", h.Printer.TestPrint)
	}
}
