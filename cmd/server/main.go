package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	financeapp "github.com/gestor-erp/backend/internal/application/finance"
	inventoryapp "github.com/gestor-erp/backend/internal/application/inventory"
	paymentapp "github.com/gestor-erp/backend/internal/application/payment"
	salesapp "github.com/gestor-erp/backend/internal/application/sales"
	"github.com/gestor-erp/backend/internal/infrastructure/config"
	"github.com/gestor-erp/backend/internal/infrastructure/logger"
	"github.com/gestor-erp/backend/internal/infrastructure/persistence"
	"github.com/gestor-erp/backend/internal/interfaces/http/handler"
	"github.com/gestor-erp/backend/internal/interfaces/http/middleware"
	"github.com/gestor-erp/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting sale lifecycle backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLogLevel := gormlogger.Silent
	if cfg.Log.Level == "debug" {
		gormLogLevel = gormlogger.Info
	}

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories
	saleRepo := persistence.NewGormSaleRepository(db.DB, cfg.Sales.CodePrefix)
	paymentMethodRepo := persistence.NewGormPaymentMethodRepository(db.DB)
	stockRepo := persistence.NewGormStockRepository(db.DB)
	movementRepo := persistence.NewGormStockMovementRepository(db.DB)
	receivableRepo := persistence.NewGormReceivableRepository(db.DB)

	// Transaction scopes binding the lifecycle side effects together
	saleTxScope := persistence.NewGormSaleTransactionScope(db.DB, cfg.Sales.CodePrefix)
	stockTxScope := persistence.NewGormStockTransactionScope(db.DB)

	// Application services
	saleService := salesapp.NewSaleService(saleRepo, paymentMethodRepo, stockRepo,
		receivableRepo, saleTxScope, log)
	stockService := inventoryapp.NewStockService(stockRepo, movementRepo, stockTxScope, log)
	receivableService := financeapp.NewReceivableService(receivableRepo, log)
	paymentMethodService := paymentapp.NewPaymentMethodService(paymentMethodRepo, log)

	// HTTP handlers
	saleHandler := handler.NewSaleHandler(saleService)
	stockHandler := handler.NewStockHandler(stockService)
	receivableHandler := handler.NewReceivableHandler(receivableService)
	paymentMethodHandler := handler.NewPaymentMethodHandler(paymentMethodService)
	systemHandler := handler.NewSystemHandler(db, cfg.App.Name)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request id, panic recovery, request logging,
	// CORS, body size limit.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint outside API versioning, for load balancers
	engine.GET("/health", func(c *gin.Context) {
		systemHandler.Health(c)
	})

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	salesRoutes := router.NewDomainGroup("sales", "/sales")
	salesRoutes.POST("", saleHandler.Create)
	salesRoutes.GET("", saleHandler.List)
	salesRoutes.GET("/stats/summary", saleHandler.GetStatusSummary)
	salesRoutes.GET("/code/:code", saleHandler.GetByCode)
	salesRoutes.GET("/:id", saleHandler.GetByID)
	salesRoutes.PUT("/:id", saleHandler.Update)
	salesRoutes.DELETE("/:id", saleHandler.Delete)
	salesRoutes.POST("/:id/confirm", saleHandler.Confirm)
	salesRoutes.POST("/:id/cancel", saleHandler.Cancel)
	salesRoutes.POST("/:id/status", saleHandler.ChangeStatus)
	salesRoutes.POST("/:id/credit/approve", saleHandler.ApproveCredit)
	salesRoutes.POST("/:id/credit/reject", saleHandler.RejectCredit)
	r.Register(salesRoutes)

	inventoryRoutes := router.NewDomainGroup("inventory", "/inventory")
	inventoryRoutes.GET("/stock", stockHandler.List)
	inventoryRoutes.POST("/stock/receive", stockHandler.Receive)
	inventoryRoutes.GET("/stock/:product_id/:location_id", stockHandler.Get)
	inventoryRoutes.GET("/stock/:product_id/:location_id/availability", stockHandler.CheckAvailability)
	inventoryRoutes.GET("/stock/:product_id/:location_id/movements", stockHandler.ListMovements)
	inventoryRoutes.GET("/movements/reference/:code", stockHandler.ListMovementsByReference)
	r.Register(inventoryRoutes)

	financeRoutes := router.NewDomainGroup("finance", "/finance")
	financeRoutes.GET("/receivables/document/:document_number", receivableHandler.ListByDocument)
	financeRoutes.GET("/receivables/:id", receivableHandler.GetByID)
	financeRoutes.POST("/receivables/:id/receive", receivableHandler.MarkReceived)
	financeRoutes.POST("/receivables/:id/overdue", receivableHandler.MarkOverdue)
	r.Register(financeRoutes)

	paymentRoutes := router.NewDomainGroup("payment", "/payment-methods")
	paymentRoutes.POST("", paymentMethodHandler.Create)
	paymentRoutes.GET("", paymentMethodHandler.List)
	paymentRoutes.GET("/:id", paymentMethodHandler.GetByID)
	paymentRoutes.PUT("/:id", paymentMethodHandler.Update)
	paymentRoutes.POST("/:id/activate", paymentMethodHandler.Activate)
	paymentRoutes.POST("/:id/deactivate", paymentMethodHandler.Deactivate)
	r.Register(paymentRoutes)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/health", systemHandler.Health)
	r.Register(systemRoutes)

	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

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
