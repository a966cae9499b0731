package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes

	"artspace/internal/domain" // Importing domain models
	"artspace/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// Every endpoint answers with the same envelope: {"success": bool, ...}.
// Failures stay HTTP 200; the flag is the contract, not the status code.

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`     // Display name must be provided
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// UserResponse is the public view of a user returned by auth and admin endpoints
type UserResponse struct {
	Name  string `json:"name"`  // Display name
	Email string `json:"email"` // Email
	Role  string `json:"role"`  // Role: member or admin
}

// RegisterHandler creates a new member account
func RegisterHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// Missing required field
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "name, email and password are required"})
			return
		}
		// Reject duplicate emails before inserting
		var existing domain.User
		if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "email already registered"})
			return
		}
		// Create the user; password is stored verbatim, matching the live system
		user := domain.User{Name: req.Name, Email: req.Email, Password: req.Password, Role: domain.RoleMember}
		if err := db.Create(&user).Error; err != nil {
			// Unique index race or any other insert failure
			logrus.WithFields(logrus.Fields{
				"email": req.Email,   // Requested email
				"error": err.Error(), // Error message
			}).Error("Registration failed") // Log registration failure
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "email already registered"})
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, usersCacheKey) // Invalidate the admin user list
		// Return the public view of the new user
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"user":    UserResponse{Name: user.Name, Email: user.Email, Role: user.Role},
		})
	}
}

// LoginHandler authenticates a user and returns their profile plus a session token
func LoginHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "email and password are required"})
			return
		}
		var user domain.User // Fetch user from database
		// Exact, case-sensitive email+password match
		if err := db.Where("email = ? AND password = ?", req.Email, req.Password).First(&user).Error; err != nil {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "invalid credentials"})
			return
		}
		// Generate the session token used by the admin endpoints
		token, err := utils.GenerateJWT(user.ID, user.Role, jwtSecret)
		if err != nil {
			logrus.WithField("error", err.Error()).Error("Token generation failed")
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"user":    UserResponse{Name: user.Name, Email: user.Email, Role: user.Role},
			"token":   token, // Bearer token for /api/users, /api/delete_user, /api/reset
		})
	}
}

// DeleteAccountRequest identifies an account by its email
type DeleteAccountRequest struct {
	Email string `json:"email" binding:"required"` // Email must be provided
}

// DeleteAccountHandler removes a user's own account by email
func DeleteAccountHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DeleteAccountRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "email is required"})
			return
		}
		var user domain.User // Locate the account
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "account not found"})
			return
		}
		if err := db.Delete(&user).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"email": req.Email,   // Account email
				"error": err.Error(), // Error message
			}).Error("Account deletion failed")
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "failed to delete account"})
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, usersCacheKey) // Invalidate the admin user list
		logrus.WithField("email", req.Email).Info("Account deleted")    // Log account deletion
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
