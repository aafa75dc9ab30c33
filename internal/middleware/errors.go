package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/gallery_app/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// ErrorHandler is the sink for errors handlers push with c.Error.
// It logs the last one and, unless a response was already written, answers
// with the AppError status or a generic 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		logger := GetLoggerFromContext(c)

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code < http.StatusInternalServerError {
			logger.Warn("Request failed", slog.Int("status", appErr.Code), slog.String("error", err.Error()))
		} else {
			logger.Error("Unhandled error", slog.String("error", err.Error()))
		}

		if c.Writer.Written() {
			return
		}

		if appErr != nil {
			c.JSON(appErr.Code, gin.H{"error": appErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
