package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/gallery_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health":            true,
	"/auth/current_user": true,
}

const posthogKey = contextKey("posthog")

// PosthogMiddleware tracks successful requests of authenticated users as PostHog events
// and makes the client available to handlers through PosthogEvent.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() {
			c.Next()
			return
		}
		c.Set(string(posthogKey), posthogClient)

		c.Next()

		if pathsToSkip[c.Request.URL.Path] || len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		// Set by the session layer, or by a handler that just logged the user in
		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		// "/auth/:provider/callback" -> "auth_:provider_callback"
		eventName := strings.ReplaceAll(strings.TrimPrefix(c.FullPath(), "/"), "/", "_")
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if len(c.Params) > 0 {
			params := make(map[string]string)
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}

		posthogClient.Enqueue(userID, eventName, props)
	}
}

// PosthogEvent sends a custom event for the current user, if any.
func PosthogEvent(c *gin.Context, eventName string, properties map[string]any) {
	val, exists := c.Get(string(posthogKey))
	if !exists {
		return
	}
	posthogClient, ok := val.(*utils.PosthogClientWrapper)
	if !ok || !posthogClient.IsInitialized() {
		return
	}

	userID, exists := GetUserIDFromContext(c)
	if !exists {
		return
	}

	if properties == nil {
		properties = make(map[string]any)
	}
	properties["method"] = c.Request.Method
	properties["path"] = c.Request.URL.Path

	posthogClient.Enqueue(userID, eventName, properties)
}
