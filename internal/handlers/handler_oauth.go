package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/SscSPs/gallery_app/internal/apperrors"
	"github.com/SscSPs/gallery_app/internal/core/domain"
	portssvc "github.com/SscSPs/gallery_app/internal/core/ports/services"
	"github.com/SscSPs/gallery_app/internal/middleware"
	"github.com/SscSPs/gallery_app/internal/utils"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
)

// OAuthHandler runs the redirect round trip of the external providers.
// The CSRF state and the PKCE verifier wait in the session until the callback.
type OAuthHandler struct {
	oauth           portssvc.OAuthSvcFacade
	sessions        portssvc.SessionSvcFacade
	successRedirect string
}

// NewOAuthHandler creates a new instance of OAuthHandler.
func NewOAuthHandler(oauth portssvc.OAuthSvcFacade, sessions portssvc.SessionSvcFacade, successRedirect string) *OAuthHandler {
	return &OAuthHandler{
		oauth:           oauth,
		sessions:        sessions,
		successRedirect: successRedirect,
	}
}

// registerOAuthRoutes registers the provider routes.
func registerOAuthRoutes(r *gin.Engine, h *OAuthHandler) {
	auth := r.Group("/auth")
	{
		auth.GET("/:provider", h.Start)
		auth.GET("/:provider/callback", h.Callback)
	}
}

// Start godoc
// @Summary Start provider login
// @Description Redirects to the provider consent page.
// @Tags oauth
// @Param provider path string true "google, facebook or twitter"
// @Success 302 "Redirect to the provider"
// @Failure 404 {object} ErrorResponse
// @Router /auth/{provider} [get]
func (h *OAuthHandler) Start(c *gin.Context) {
	provider, ok := h.provider(c)
	if !ok {
		return
	}

	state, err := utils.GenerateSecureToken(16)
	if err != nil {
		_ = c.Error(err)
		return
	}
	verifier := oauth2.GenerateVerifier()

	authURL, err := h.oauth.AuthCodeURL(provider, state, verifier)
	if err != nil {
		_ = c.Error(err)
		return
	}

	middleware.GetSession(c).BeginOAuth(provider, state, verifier)
	if err := middleware.SaveSession(c); err != nil {
		_ = c.Error(err)
		return
	}
	c.Redirect(http.StatusFound, authURL)
}

// Callback godoc
// @Summary Provider callback
// @Description Completes provider login, creating the account on first use.
// @Tags oauth
// @Param provider path string true "google, facebook or twitter"
// @Param code query string false "Authorization code"
// @Param state query string false "CSRF state"
// @Success 302 "Redirect to the application, or back to signin with flash messages"
// @Failure 404 {object} ErrorResponse
// @Router /auth/{provider}/callback [get]
func (h *OAuthHandler) Callback(c *gin.Context) {
	provider, ok := h.provider(c)
	if !ok {
		return
	}
	logger := middleware.GetLoggerFromContext(c).With(slog.String("provider", string(provider)))
	session := middleware.GetSession(c)
	pendingProvider, state, verifier := session.EndOAuth()

	failed := apperrors.NewAuthFailure("Sign in with " + provider.DisplayName() + " failed, please try again")

	if providerErr := c.Query("error"); providerErr != "" {
		logger.Info("Provider login cancelled", slog.String("error", providerErr))
		respondAuthFailure(c, apperrors.NewAuthFailure("Sign in with "+provider.DisplayName()+" was cancelled"), signinPath)
		return
	}
	if pendingProvider != provider || state == "" ||
		subtle.ConstantTimeCompare([]byte(state), []byte(c.Query("state"))) != 1 {
		logger.Warn("OAuth state mismatch")
		respondAuthFailure(c, failed, signinPath)
		return
	}
	code := c.Query("code")
	if code == "" {
		logger.Warn("OAuth callback without code")
		respondAuthFailure(c, failed, signinPath)
		return
	}

	user, err := h.oauth.Authenticate(c.Request.Context(), provider, code, verifier, middleware.GetAccessInfo(c))
	if err != nil {
		if failure, ok := apperrors.AsAuthFailure(err); ok {
			logger.Info("Provider login rejected", slog.Any("messages", failure.Messages))
			respondAuthFailure(c, failure, signinPath)
			return
		}
		_ = c.Error(err)
		return
	}

	if !logInUser(c, h.sessions, user) {
		return
	}
	middleware.PosthogEvent(c, "user_signed_in", map[string]any{"provider": string(provider)})
	logger.Info("User logged in through provider", slog.String("user_id", user.UserID))
	c.Redirect(http.StatusFound, h.successRedirect)
}

// provider resolves the :provider segment, answering 404 for unknown or unconfigured ones.
func (h *OAuthHandler) provider(c *gin.Context) (domain.AuthProvider, bool) {
	provider, ok := domain.ParseAuthProvider(c.Param("provider"))
	if !ok || !h.oauth.HasProvider(provider) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Unknown login provider"})
		return "", false
	}
	return provider, true
}
