package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/SscSPs/gallery_app/internal/apperrors"
	"github.com/SscSPs/gallery_app/internal/dto"
	"github.com/SscSPs/gallery_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse carries informational messages for JSON clients.
type MessageResponse struct {
	Messages []string `json:"messages"`
}

// wantsJSON reports whether the client talks JSON rather than being a browser
// following redirects.
func wantsJSON(c *gin.Context) bool {
	if strings.Contains(c.GetHeader("Accept"), gin.MIMEJSON) {
		return true
	}
	return c.ContentType() == gin.MIMEJSON
}

// respondAuthFailure reports a rejected authentication attempt: JSON clients get the
// messages in the body, browsers get them as flash messages on redirectTo.
// The session is saved either way so counters and flashes survive.
func respondAuthFailure(c *gin.Context, failure *apperrors.AuthFailure, redirectTo string) {
	session := middleware.GetSession(c)
	if !wantsJSON(c) {
		session.AddFlash(failure.Messages...)
	}
	if err := middleware.SaveSession(c); err != nil {
		_ = c.Error(err)
		return
	}

	if wantsJSON(c) {
		status := http.StatusUnauthorized
		if errors.Is(failure, apperrors.ErrValidation) || errors.Is(failure, apperrors.ErrDuplicate) {
			status = http.StatusBadRequest
		}
		c.JSON(status, dto.AuthErrorResponse{Errors: failure.Messages})
		return
	}
	c.Redirect(http.StatusFound, redirectTo)
}

// respondMessage answers JSON clients with status and messages, and redirects browsers
// to redirectTo with the messages flashed.
func respondMessage(c *gin.Context, status int, redirectTo string, messages ...string) {
	if wantsJSON(c) {
		c.JSON(status, MessageResponse{Messages: messages})
		return
	}
	middleware.GetSession(c).AddFlash(messages...)
	if err := middleware.SaveSession(c); err != nil {
		_ = c.Error(err)
		return
	}
	c.Redirect(http.StatusFound, redirectTo)
}
