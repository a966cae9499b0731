package db

import (
	"errors" // For gorm.ErrRecordNotFound checks

	"artspace/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"gorm.io/driver/sqlite" // SQLite driver for GORM
	"gorm.io/gorm"          // GORM ORM library
)

// Default admin account, recreated on every bootstrap and reset
const (
	AdminName     = "Admin"
	AdminEmail    = "admin@artspace.com"
	AdminPassword = "admin888"
	AdminRole     = domain.RoleAdmin
)

// Migrate performs automatic migration for the database schema
func Migrate(path string) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{}) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := Setup(db); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}

// Setup migrates the schema and guarantees the admin seed row exists
func Setup(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.User{}, &domain.Artwork{}); err != nil {
		return err
	}
	return SeedAdmin(db)
}

// SeedAdmin creates the default admin user if it is missing
func SeedAdmin(db *gorm.DB) error {
	var user domain.User
	err := db.Where("email = ?", AdminEmail).First(&user).Error
	if err == nil {
		return nil // Admin already present
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	admin := domain.User{
		Name:     AdminName,     // Display name
		Email:    AdminEmail,    // Seed email
		Password: AdminPassword, // Seed password
		Role:     AdminRole,     // Admin role
	}
	return db.Create(&admin).Error
}

// Reset clears both tables and reseeds the single admin row
func Reset(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		// Delete rows, keep the tables
		if err := tx.Where("1 = 1").Delete(&domain.Artwork{}).Error; err != nil {
			return err // Return error to rollback
		}
		if err := tx.Where("1 = 1").Delete(&domain.User{}).Error; err != nil {
			return err // Return error to rollback
		}
		// Recreate the admin
		admin := domain.User{
			Name:     AdminName,
			Email:    AdminEmail,
			Password: AdminPassword,
			Role:     AdminRole,
		}
		return tx.Create(&admin).Error
	})
}
