package main

import (
	"log"
	"net/http"
	"os"

	"restaurant-management-api/config"
	"restaurant-management-api/handlers"
	"restaurant-management-api/jobs"
	"restaurant-management-api/loyalty"
	"restaurant-management-api/notify"
	"restaurant-management-api/pkg/logger"
	"restaurant-management-api/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadEnv()

	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	zlog, err := logger.NewFromEnv()
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer zlog.Sync()

	// Initialize database
	config.InitDB()

	// Wire services
	handlers.Log = zlog
	handlers.Loyalty = loyalty.NewService(config.DB, zlog.Named("loyalty"))
	sender := notify.NewAPISender(config.MailAPIURL(), config.MailAPIKey())
	handlers.Mailer = sender
	hooks := notify.NewHandler(sender, config.WebhookSecret, config.MailFrom(), zlog.Named("notify"))

	// Background jobs
	scanner := jobs.NewLowStockScanner(config.DB, zlog.Named("jobs"), config.GetEnv("LOW_STOCK_CRON", ""))
	if err := scanner.Start(); err != nil {
		log.Fatal("Failed to start low stock scanner:", err)
	}
	defer scanner.Stop()

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

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Restaurant Management API",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "🍽️ Welcome to the Restaurant Management API",
			"docs":    "/api/state-machine",
			"health":  "/health",
			"roles":   []string{"customer", "staff", "owner", "admin"},
		})
	})

	// Register all routes
	routes.SetupRoutes(r, hooks)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
