package middleware

import (
	"net/http"
	"strings"

	"workforce_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Context keys populated by AuthMiddleware for downstream handlers.
const (
	ContextUserIDKey    = "userID"
	ContextUserEmailKey = "userEmail"
	ContextUserRoleKey  = "userRole"
)

// AuthMiddleware creates a Gin middleware for JWT authentication.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format. Use Bearer <token>"})
			c.Abort()
			return
		}

		tokenString := parts[1]
		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token: " + err.Error()})
			c.Abort()
			return
		}

		// Set user information in the context for downstream handlers
		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextUserEmailKey, claims.Email)
		c.Set(ContextUserRoleKey, claims.Role)

		c.Next()
	}
}

// RoleAuthMiddleware creates a Gin middleware for role-based authorization.
// It checks if the user role (from JWT claims) is one of the allowed roles.
func RoleAuthMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get(ContextUserRoleKey)
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "User role not found in token claims. Ensure AuthMiddleware runs first."})
			c.Abort()
			return
		}

		roleStr, ok := userRole.(string)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "User role in token is not a string"})
			c.Abort()
			return
		}

		allowed := false
		for _, r := range allowedRoles {
			if strings.EqualFold(roleStr, r) {
				allowed = true
				break
			}
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource. Required roles: " + strings.Join(allowedRoles, ", ")})
			c.Abort()
			return
		}

		c.Next()
	}
}
