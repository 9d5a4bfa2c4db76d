package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/luminance-clinic/backend-clinic/config"
	"github.com/luminance-clinic/backend-clinic/models"
	"github.com/luminance-clinic/backend-clinic/routes"
	"github.com/luminance-clinic/backend-clinic/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Initialize configuration
	cfg := config.NewConfig()
	logger := config.NewLogger(cfg)

	// Initialize Supabase client
	supabaseClient := config.NewSupabaseClient(cfg)

	// Initialize redis-backed booking de-duplication
	cache := services.NewCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if cache == nil {
		logger.Warn("REDIS_ADDR not set, booking de-duplication disabled")
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	models.InitValidation()

	// Create Gin router
	router := gin.Default()

	// Setup CORS middleware
	router.Use(config.CORSMiddleware(cfg))

	// Setup routes
	routes.SetupRoutes(router, supabaseClient, cfg, cache, logger)

	// Start server
	logger.WithField("port", cfg.Port).Info("server starting")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
