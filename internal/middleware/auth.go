package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/gallery_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// SetCurrentUser marks user as the authenticated user of this request.
func SetCurrentUser(c *gin.Context, user *domain.User) {
	c.Set(string(userKey), user)
	c.Set(string(userIDKey), user.UserID)

	// Store the user ID in the standard context as well
	c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), userIDKey, user.UserID))
	enrichLogger(c, slog.String("user_id", user.UserID))
}

// RequireUser aborts requests that carry no authenticated session.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetCurrentUser(c) == nil {
			GetLoggerFromContext(c).Warn("Unauthenticated request to protected route")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.Next()
	}
}

// RequireAdmin aborts requests whose user is not the admin.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetCurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if !user.Admin {
			GetLoggerFromContext(c).Warn("Non-admin user denied access", slog.String("user_id", user.UserID))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
