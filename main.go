package main

import (
	"net/http"
	"os"

	"mug-life-api/config"
	"mug-life-api/handlers"
	"mug-life-api/metrics"
	"mug-life-api/routes"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if os.Getenv("LOG_JSON") != "" {
		log.SetFormatter(&log.JSONFormatter{})
	}

	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize credential database
	config.InitDB()

	orderMetrics := metrics.NewOrderMetrics()
	requestMetrics := metrics.NewRequestMetrics()

	api := handlers.NewAPI(orderMetrics)

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	r.Use(requestMetrics.Middleware())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Mug Life Coffee Shop API",
			"version": "1.0.0",
		})
	})

	// Prometheus scrape endpoint
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "☕ Welcome to the Mug Life Coffee Shop API",
			"docs":    "/api/state-machine",
			"health":  "/health",
			"roles":   []string{"customer", "admin"},
		})
	})

	// Register all routes
	routes.SetupRoutes(r, api)

	// Start server
	port := config.Port()
	log.Infof("🚀 Server running on http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
