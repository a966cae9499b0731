package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort   string // Application port
	DBPath    string // SQLite database file path
	UploadDir string // Root directory for uploaded assets
	JWTSecret string // JWT secret key
	RedisAddr string // Redis server address (empty disables caching)
	RedisPass string // Redis password
	RedisDB   int    // Redis database number
	IsProd    bool   // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	cfg := &Config{
		AppPort:   os.Getenv("APP_PORT"),          // Application port
		DBPath:    os.Getenv("DB_PATH"),           // SQLite database file path
		UploadDir: os.Getenv("UPLOAD_DIR"),        // Upload root directory
		JWTSecret: os.Getenv("JWT_SECRET"),        // JWT secret key
		RedisAddr: os.Getenv("REDIS_ADDR"),        // Redis server address
		RedisPass: os.Getenv("REDIS_PASS"),        // Redis password
		RedisDB:   redisDB,                        // Redis database number
		IsProd:    os.Getenv("IS_PROD") == "true", // Is production environment
	}
	// Fall back to the defaults the original deployment used
	if cfg.AppPort == "" {
		cfg.AppPort = "8080"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "artspace.db"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "static/uploads"
	}
	return cfg
}
