package main

import (
	"artspace/internal/config" // Custom import path (Config)
	"artspace/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	db.Migrate(cfg.DBPath)     // Create tables and seed the admin account
}
