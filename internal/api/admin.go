package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes

	appdb "artspace/internal/db" // Bootstrap and reset helpers
	"artspace/internal/domain"   // Importing domain models
	"artspace/internal/utils"    // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// Admin endpoints sit behind the JWT + admin-role middleware pair; by the
// time a handler runs, the caller is a verified admin.

// ListUsersHandler returns all registered users
func ListUsersHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Use background context for Redis
		var cached []UserResponse
		// Serve from cache when possible
		found, err := utils.GetCache(ctx, rdb, usersCacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		var users []domain.User // Slice to hold users
		// Full table scan in insertion order
		if err := db.Order("id").Find(&users).Error; err != nil {
			// Even a DB failure keeps the envelope shape
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "failed to fetch users"})
			return
		}
		// Map users to the public shape
		resp := make([]UserResponse, len(users))
		for i, u := range users {
			resp[i] = UserResponse{
				Name:  u.Name,  // Display name
				Email: u.Email, // Email
				Role:  u.Role,  // Role
			}
		}
		_ = utils.SetCache(ctx, rdb, usersCacheKey, resp, cacheTTL) // Cache the user list
		c.JSON(http.StatusOK, resp)                                 // Return the user list
	}
}

// DeleteUserRequest identifies a user by email
type DeleteUserRequest struct {
	Email string `json:"email" binding:"required"` // Email must be provided
}

// DeleteUserHandler removes a user on behalf of an admin
func DeleteUserHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DeleteUserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "email is required"})
			return
		}
		var user domain.User // Locate the user
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "user not found"})
			return
		}
		if err := db.Delete(&user).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"email": req.Email,   // Target email
				"error": err.Error(), // Error message
			}).Error("User deletion failed")
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "failed to delete user"})
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, usersCacheKey) // Invalidate the admin user list
		logrus.WithField("email", req.Email).Info("User deleted")       // Log user deletion
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// ResetHandler wipes both tables and reseeds the single admin account
func ResetHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := appdb.Reset(db); err != nil {
			logrus.WithField("error", err.Error()).Error("Reset failed")
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "failed to reset"})
			return
		}
		// Both cached listings are now stale
		ctx := context.Background()
		_ = utils.DeleteCache(ctx, rdb, catalogCacheKey)
		_ = utils.DeleteCache(ctx, rdb, usersCacheKey)
		logrus.Warn("System reset: all data cleared, admin reseeded") // Log the reset
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
