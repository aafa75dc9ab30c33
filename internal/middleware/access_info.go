package middleware

import (
	"time"

	"github.com/SscSPs/gallery_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// AccessInfoMiddleware captures the client IP and user agent of the request.
// Strategies record them on the user as login and registration audit data.
func AccessInfoMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(accessInfoKey), domain.AccessInfo{
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			At:        time.Now().UTC(),
		})
		c.Next()
	}
}

// GetAccessInfo returns the access info captured for this request.
func GetAccessInfo(c *gin.Context) domain.AccessInfo {
	if val, exists := c.Get(string(accessInfoKey)); exists {
		if info, ok := val.(domain.AccessInfo); ok {
			return info
		}
	}
	return domain.AccessInfo{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		At:        time.Now().UTC(),
	}
}
