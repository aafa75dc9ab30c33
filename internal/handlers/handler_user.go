package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/gallery_app/internal/core/ports/services"
	"github.com/SscSPs/gallery_app/internal/dto"
	"github.com/SscSPs/gallery_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService portssvc.UserReaderSvc
}

// newUserHandler creates a new userHandler.
func newUserHandler(us portssvc.UserReaderSvc) *userHandler {
	return &userHandler{
		userService: us,
	}
}

// registerAdminRoutes registers the admin only user routes.
func registerAdminRoutes(r *gin.Engine, userService portssvc.UserReaderSvc) {
	h := newUserHandler(userService)

	admin := r.Group("/api/admin", middleware.RequireUser(), middleware.RequireAdmin())
	{
		admin.GET("/users", h.listUsers)
	}
}

// listUsers godoc
// @Summary List users
// @Description Retrieves a page of users, oldest first. Admin only.
// @Tags admin
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   page_token query string false "Token of the page to fetch"
// @Success 200 {object} dto.ListUsersResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 500 {object} ErrorResponse "Failed to list users"
// @Router /api/admin/users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListUsers", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	logger.Info("Received request to list users", slog.Int("limit", params.Limit), slog.Bool("has_page_token", params.PageToken != ""))

	users, nextPageToken, err := h.userService.ListUsers(c.Request.Context(), params.Limit, params.PageToken)
	if err != nil {
		_ = c.Error(err)
		return
	}

	logger.Info("Users listed successfully", slog.Int("count", len(users)))
	c.JSON(http.StatusOK, dto.ToListUserResponse(users, nextPageToken))
}
