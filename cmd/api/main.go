package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"dompet/internal/cache"
	"dompet/internal/config"
	"dompet/internal/database"
	"dompet/internal/handlers"
	"dompet/internal/logger"
	"dompet/internal/middleware"
	"dompet/internal/services"
	"dompet/internal/validator"

	_ "dompet/internal/docs" // Import swagger docs
)

// @title           Dompet API
// @version         1.0
// @description     Dompet is a personal money manager: pockets, transactions and planned payments with balances kept reconciled.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	dbConfig, err := database.NewConfig(appConfig)
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("failed to close database: %v", err)
		}
	}()

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	summaryCache, err := cache.New[*services.Summary](appConfig.SummaryCacheTTL)
	if err != nil {
		return fmt.Errorf("failed to create summary cache: %w", err)
	}
	defer summaryCache.Close()

	// Initialize services
	db := dbManager.DB()
	svc := handlers.Services{
		Users:        services.NewUserService(db, summaryCache),
		Pockets:      services.NewPocketService(db, summaryCache),
		Transactions: services.NewTransactionService(db, summaryCache),
		Plans:        services.NewPlanService(db, summaryCache),
		Summary:      services.NewSummaryService(db, summaryCache),
		Snapshot:     services.NewSnapshotService(db),
		Audit:        services.NewAuditService(db),
	}

	validator.Register()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(appConfig.CORSAllowedOrigin))
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlers.RegisterRoutes(router.Group("/api/v1"), svc)

	log.Infof("Starting Dompet server on port %s (db driver: %s)", appConfig.Port, dbConfig.Driver)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
