package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging

	"artspace/internal/api"        // Custom package for API handlers
	"artspace/internal/config"     // Custom package for configuration
	appdb "artspace/internal/db"   // Custom package for schema setup and seeding
	"artspace/internal/middleware" // Custom package for middleware
	"artspace/internal/storage"    // Custom package for uploaded assets

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/sqlite"        // SQLite driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the SQLite database
	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Migrate the schema and seed the admin account
	if err := appdb.Setup(db); err != nil {
		logrus.Fatalf("failed to set up database: %v", err)
	}

	// Create the upload directories
	store := storage.NewAssetStore(cfg.UploadDir)
	if err := store.Setup(); err != nil {
		logrus.Fatalf("failed to create upload directories: %v", err)
	}

	// Setup Redis client; an empty address disables caching
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
	} else {
		logrus.Warn("REDIS_ADDR not set, response caching disabled")
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Uploaded assets are served as plain files
	r.Static("/static/uploads", cfg.UploadDir)

	// Public routes
	r.GET("/api/artworks", api.ListArtworksHandler(db, redisClient, store))     // Catalog endpoint
	r.POST("/api/register", api.RegisterHandler(db, redisClient))               // Registration endpoint
	r.POST("/api/login", api.LoginHandler(db, cfg.JWTSecret))                   // Login endpoint
	r.POST("/api/upload", api.UploadArtworkHandler(db, redisClient, store))     // Artwork upload endpoint
	r.POST("/api/buy", api.BuyArtworkHandler(db, redisClient, store))           // Purchase endpoint
	r.POST("/api/edit", api.EditArtworkHandler(db, redisClient))                // Edit endpoint
	r.POST("/api/delete_art", api.DeleteArtworkHandler(db, redisClient, store)) // Artwork delete endpoint
	r.POST("/api/delete_account", api.DeleteAccountHandler(db, redisClient))    // Self-service account delete

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/api")
	// Protect admin routes with JWT and AdminOnly middleware
	adminGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnlyMiddleware())
	adminGroup.GET("/users", api.ListUsersHandler(db, redisClient))         // List users endpoint
	adminGroup.POST("/delete_user", api.DeleteUserHandler(db, redisClient)) // Admin user delete endpoint
	adminGroup.POST("/reset", api.ResetHandler(db, redisClient))            // Full reset endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
