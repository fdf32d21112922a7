package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"spinnerbot/internal/auth"
)

const (
	userIDKey    = "user_id"
	userEmailKey = "user_email"
)

// AuthRequired validates the bearer token and stores the caller identity in
// the gin context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header"})
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(userEmailKey, claims.Email)
		c.Next()
	}
}

// UserID extracts the authenticated user id from the gin context.
func UserID(c *gin.Context) uint {
	if id, ok := c.Get(userIDKey); ok {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return 0
}
