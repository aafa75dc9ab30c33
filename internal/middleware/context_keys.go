package middleware

import (
	"github.com/SscSPs/gallery_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

const (
	// userIDKey is the key used to store the authenticated user's ID in the Gin context.
	userIDKey        = contextKey("userID")
	userKey          = contextKey("user")
	sessionKey       = contextKey("session")
	sessionCookieKey = contextKey("sessionCookie")
	accessInfoKey    = contextKey("accessInfo")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		if userID, ok := c.Request.Context().Value(userIDKey).(string); ok && userID != "" {
			return userID, true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		return "", false
	}

	return userID, true
}

// GetCurrentUser returns the user deserialized from the session, or nil for anonymous requests.
func GetCurrentUser(c *gin.Context) *domain.User {
	val, exists := c.Get(string(userKey))
	if !exists {
		return nil
	}
	user, _ := val.(*domain.User)
	return user
}

// GetSession returns the session loaded for this request.
// Handlers running without SessionMiddleware get a throwaway session.
func GetSession(c *gin.Context) *domain.Session {
	if val, exists := c.Get(string(sessionKey)); exists {
		if session, ok := val.(*domain.Session); ok && session != nil {
			return session
		}
	}
	session := &domain.Session{}
	c.Set(string(sessionKey), session)
	return session
}

// SetSession replaces the request's session, e.g. after login regenerated it.
func SetSession(c *gin.Context, session *domain.Session) {
	c.Set(string(sessionKey), session)
}
