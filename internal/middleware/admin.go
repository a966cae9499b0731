package middleware

import (
	"net/http" // HTTP status codes

	"artspace/internal/domain" // Role constants

	"github.com/gin-gonic/gin" // Gin web framework
)

// AdminOnlyMiddleware gates a route on the role claim minted at login.
// A token issued before a role change keeps its old role until it expires.
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("userRole") // Role claim set by the JWT middleware
		if !exists {
			// No authenticated session at all
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if role != domain.RoleAdmin {
			// Members never reach the admin handlers
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next() // Verified admin, proceed
	}
}
