package middleware

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/gallery_app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// SessionCookie configures the cookie carrying the session ID.
type SessionCookie struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

// SessionMiddleware loads the session named by the request cookie (or starts a
// new one) and exposes it through GetSession. Handlers that change the session
// persist it with SaveSession before writing their response.
func SessionMiddleware(sessions portssvc.SessionSvcFacade, cookie SessionCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(cookie.Name)

		session, err := sessions.Load(c.Request.Context(), id)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Set(string(sessionKey), session)
		c.Set(string(sessionCookieKey), cookie)
		c.Set(string(sessionSvcKey), sessions)
		c.Next()
	}
}

const sessionSvcKey = contextKey("sessionService")

// SaveSession persists the request's session and (re)sends its cookie.
func SaveSession(c *gin.Context) error {
	sessions, ok := sessionServiceFrom(c)
	if !ok {
		return nil
	}
	session := GetSession(c)
	if err := sessions.Save(c.Request.Context(), session); err != nil {
		return err
	}
	WriteSessionCookie(c)
	return nil
}

// ClearSessionCookie expires the session cookie in the browser.
func ClearSessionCookie(c *gin.Context) {
	cookie := sessionCookieFrom(c)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookie.Name, "", -1, "/", "", cookie.Secure, true)
}

// WriteSessionCookie sends the cookie for the request's current session ID.
// Use it after the session service already stored the session, e.g. on login.
func WriteSessionCookie(c *gin.Context) {
	id := GetSession(c).ID
	cookie := sessionCookieFrom(c)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookie.Name, id, int(cookie.MaxAge.Seconds()), "/", "", cookie.Secure, true)
}

func sessionCookieFrom(c *gin.Context) SessionCookie {
	if val, exists := c.Get(string(sessionCookieKey)); exists {
		if cookie, ok := val.(SessionCookie); ok {
			return cookie
		}
	}
	return SessionCookie{Name: "gallery.sid", MaxAge: 30 * 24 * time.Hour}
}

func sessionServiceFrom(c *gin.Context) (portssvc.SessionSvcFacade, bool) {
	val, exists := c.Get(string(sessionSvcKey))
	if !exists {
		return nil, false
	}
	sessions, ok := val.(portssvc.SessionSvcFacade)
	return sessions, ok
}

// DeserializeUserMiddleware resolves the session's user ID into the current user.
// Sessions whose user has disappeared are downgraded to anonymous ones.
func DeserializeUserMiddleware(sessions portssvc.SessionSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := GetSession(c)
		if !session.IsAuthenticated() {
			c.Next()
			return
		}

		userID := session.UserID
		user, err := sessions.DeserializeUser(c.Request.Context(), session)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		if user == nil {
			GetLoggerFromContext(c).Warn("Session references a missing user", slog.String("user_id", userID))
			if err := sessions.Save(c.Request.Context(), session); err != nil {
				_ = c.Error(err)
				c.Abort()
				return
			}
			c.Next()
			return
		}

		SetCurrentUser(c, user)
		c.Next()
	}
}
