package main

import (
	"context"
	"log"
	"time"

	_ "stockledger/api/swagger" // swagger docs
	"stockledger/internal/config"
	"stockledger/internal/database"
	"stockledger/internal/handler"
	"stockledger/internal/middleware"
	"stockledger/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Stock Ledger API
// @version         1.0
// @description     Monthly stock ledger and cross-location requisitions for one warehouse or outlet.
// @host            localhost:8080
// @BasePath        /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration invalid: %v", err)
	}
	logger := config.NewLogger(cfg.LogLevel, cfg.LogFormat)
	appLog := logger.WithField("location", cfg.Location)

	store, err := database.OpenStore(cfg, logger)
	if err != nil {
		appLog.Fatalf("Store unavailable: %v", err)
	}
	appLog.WithField("driver", cfg.StoreDriver).Info("Record store ready")

	queueLock, closeLock, err := database.OpenQueueLock(context.Background(), cfg, logger)
	if err != nil {
		appLog.Fatalf("Queue lock unavailable: %v", err)
	}
	defer closeLock()

	// Set up dependencies (Repository -> Service -> Handler)
	directoryService := service.NewDirectoryService(store.Directory, store.Tx, logger)
	journal := service.NewJournal(cfg.Location, store.Ledger, time.Now)
	stockService := service.NewStockService(service.StockConfig{
		Location:        cfg.Location,
		DuplicatePolicy: service.DuplicatePolicy(cfg.DuplicateItemPolicy),
		Categories:      directoryService,
	}, store.Inventory, journal, store.Tx, logger)
	ledgerService := service.NewLedgerService(journal, stockService, store.Tx, logger)
	requisitionService := service.NewRequisitionService(stockService, store.Orders, store.Tx, queueLock, time.Now, logger)
	importService := service.NewImportService(stockService, logger)

	// Initialize Handlers
	stockHandler := handler.NewStockHandler(stockService, directoryService, importService)
	ledgerHandler := handler.NewLedgerHandler(ledgerService)
	requisitionHandler := handler.NewRequisitionHandler(requisitionService)
	directoryHandler := handler.NewDirectoryHandler(directoryService)

	// Set up Gin Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.LocationScope(cfg.Location, cfg.LocationRole))
	router.Use(middleware.RequestLogger(logger))

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.ExposeHeaders = []string{"Content-Disposition"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK", "location": cfg.Location, "role": cfg.LocationRole})
	})

	// API Routing
	stockHandler.RegisterRoutes(router.Group(""))
	ledgerHandler.RegisterRoutes(router.Group(""))
	requisitionHandler.RegisterRoutes(router.Group(""))
	directoryHandler.RegisterRoutes(router.Group(""))

	appLog.Infof("Server listening on :%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		appLog.Fatalf("Server failed: %v", err)
	}
}
