package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/grocertrack/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		match := v1.Group("/match")
		{
			match.POST("", handler.Match)
			match.POST("/best", handler.BestMatch)
		}

		items := v1.Group("/items")
		{
			items.POST("", handler.CreateItem)
			items.GET("/flagged", handler.ListFlagged)
		}

		receipts := v1.Group("/receipts")
		{
			receipts.POST("/ingest", handler.IngestReceipt)
			receipts.POST("/scan", handler.ScanReceipt)
		}

		v1.POST("/assistant/classify", handler.ClassifyIntent)
		v1.GET("/weights/:item", handler.GetWeight)

		prices := v1.Group("/prices")
		{
			prices.POST("/convert", handler.ConvertPrice)
			prices.POST("/compare", handler.ComparePrices)
		}
	}

	return router
}
