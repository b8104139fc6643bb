package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/atelie/backend/internal/application/catalog"
	financeapp "github.com/atelie/backend/internal/application/finance"
	identityapp "github.com/atelie/backend/internal/application/identity"
	partnerapp "github.com/atelie/backend/internal/application/partner"
	reportapp "github.com/atelie/backend/internal/application/report"
	tradeapp "github.com/atelie/backend/internal/application/trade"
	"github.com/atelie/backend/internal/infrastructure/auth"
	"github.com/atelie/backend/internal/infrastructure/config"
	"github.com/atelie/backend/internal/infrastructure/logger"
	"github.com/atelie/backend/internal/infrastructure/persistence"
	"github.com/atelie/backend/internal/interfaces/http/handler"
	"github.com/atelie/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Ateliê Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection
	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully", zap.String("driver", cfg.Database.Driver))

	// Token blacklist: redis in deployments, in-memory fallback for local runs
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		if cfg.IsProduction() {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		log.Info("Redis connected successfully", zap.String("addr", cfg.Redis.Addr()))
	}

	// Initialize repositories
	clientRepo := persistence.NewGormClientRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Initialize application services. The sale service doubles as the
	// ledger transposer for paid orders, so it is built before the order
	// service that depends on it.
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	clientService := partnerapp.NewClientService(clientRepo, log)
	productService := catalogapp.NewProductService(productRepo, log)
	saleService := financeapp.NewSaleService(saleRepo, orderRepo, clientRepo, log)
	orderService := tradeapp.NewOrderService(orderRepo, clientRepo, productRepo, saleService, log)
	expenseService := financeapp.NewExpenseService(expenseRepo, log)
	analyticsService := reportapp.NewAnalyticsService(saleRepo, expenseRepo, log)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	clientHandler := handler.NewClientHandler(clientService)
	productHandler := handler.NewProductHandler(productService)
	orderHandler := handler.NewOrderHandler(orderService)
	saleHandler := handler.NewSaleHandler(saleService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)

	// Setup Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(logger.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.GET("/health", healthHandler(db))

	api := engine.Group("/api/v1")

	// Public auth routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)

	// Authenticated routes (any valid token, approval not required)
	authed := api.Group("")
	authed.Use(middleware.JWTAuthMiddleware(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
	}))
	authed.POST("/auth/logout", authHandler.Logout)
	authed.GET("/auth/me", authHandler.Profile)

	// Business routes require an approved account
	approved := authed.Group("")
	approved.Use(middleware.RequireApproved())

	approved.POST("/clients", clientHandler.Create)
	approved.GET("/clients", clientHandler.List)
	approved.GET("/clients/:id", clientHandler.Get)
	approved.PUT("/clients/:id", clientHandler.Update)
	approved.DELETE("/clients/:id", clientHandler.Delete)

	approved.POST("/products", productHandler.Create)
	approved.GET("/products", productHandler.List)
	approved.GET("/products/:id", productHandler.Get)
	approved.PUT("/products/:id", productHandler.Update)
	approved.POST("/products/:id/deactivate", productHandler.Deactivate)
	approved.POST("/products/:id/activate", productHandler.Activate)

	approved.POST("/orders", orderHandler.Create)
	approved.GET("/orders", orderHandler.List)
	approved.GET("/orders/:id", orderHandler.Get)
	approved.GET("/orders/:id/items", orderHandler.GetItems)
	approved.PUT("/orders/:id", orderHandler.Update)
	approved.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
	approved.PATCH("/orders/:id/payment-status", orderHandler.UpdatePaymentStatus)
	approved.DELETE("/orders/:id", orderHandler.Delete)

	approved.POST("/sales", saleHandler.Create)
	approved.GET("/sales", saleHandler.List)
	approved.GET("/sales/:id", saleHandler.Get)
	approved.PUT("/sales/:id", saleHandler.Update)
	approved.DELETE("/sales/:id", saleHandler.Delete)

	approved.POST("/expenses", expenseHandler.Create)
	approved.GET("/expenses", expenseHandler.List)
	approved.GET("/expenses/summary", expenseHandler.MonthlySummary)
	approved.GET("/expenses/:id", expenseHandler.Get)
	approved.PUT("/expenses/:id", expenseHandler.Update)
	approved.POST("/expenses/:id/pay", expenseHandler.Pay)
	approved.DELETE("/expenses/:id", expenseHandler.Delete)

	approved.GET("/analytics/movements", analyticsHandler.Movements)
	approved.GET("/analytics/balance", analyticsHandler.Balance)
	approved.GET("/analytics/goal", analyticsHandler.GoalSummary)

	// Admin routes
	admin := authed.Group("/admin")
	admin.Use(middleware.RequireRole("admin"))
	admin.PATCH("/users/:id/approval", authHandler.SetApprovalStatus)

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports process and database health.
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
