package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/gallery_app/internal/apperrors"
	"github.com/SscSPs/gallery_app/internal/core/domain"
	portssvc "github.com/SscSPs/gallery_app/internal/core/ports/services"
	"github.com/SscSPs/gallery_app/internal/dto"
	"github.com/SscSPs/gallery_app/internal/middleware"
	"github.com/SscSPs/gallery_app/internal/platform/config"
	"github.com/gin-gonic/gin"
)

const (
	signinPath = "/auth/signin"
	signupPath = "/auth/signup"
)

// AuthHandler handles the local strategies, logout and email verification.
type AuthHandler struct {
	localAuth       portssvc.LocalAuthSvc
	sessions        portssvc.SessionSvcFacade
	oauth           portssvc.OAuthSvcFacade
	verification    portssvc.VerificationSvc
	successRedirect string
	captchaAfter    int
	siteKey         string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(services *portssvc.ServiceContainer, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		localAuth:       services.LocalAuth,
		sessions:        services.Session,
		oauth:           services.OAuth,
		verification:    services.Verification,
		successRedirect: cfg.SuccessRedirect,
		captchaAfter:    cfg.SignInCaptchaAfter,
		siteKey:         cfg.RecaptchaSiteKey,
	}
}

// authPageData is rendered by the signin and signup templates.
type authPageData struct {
	Title       string
	Action      string
	Messages    []string
	Providers   []domain.AuthProvider
	ShowCaptcha bool
	SiteKey     string
}

// registerAuthRoutes sets up the routes for authentication.
func registerAuthRoutes(r *gin.Engine, h *AuthHandler, limit gin.HandlerFunc) {
	auth := r.Group("/auth")
	{
		auth.GET("/signup", h.SignupPage)
		auth.POST("/signup", limit, h.Signup)
		auth.GET("/signin", h.SigninPage)
		auth.POST("/signin", limit, h.Signin)
		auth.GET("/logout", h.Logout)
		auth.GET("/verify", h.VerifyEmail)
		auth.GET("/current_user", h.CurrentUser)
	}
}

// SignupPage renders the signup form with pending flash messages.
func (h *AuthHandler) SignupPage(c *gin.Context) {
	h.renderPage(c, "signup.html", authPageData{
		Title:       "Sign up",
		Action:      signupPath,
		ShowCaptcha: h.siteKey != "",
	})
}

// SigninPage renders the signin form. The captcha is shown once the session
// collected enough failed attempts.
func (h *AuthHandler) SigninPage(c *gin.Context) {
	session := middleware.GetSession(c)
	h.renderPage(c, "signin.html", authPageData{
		Title:       "Sign in",
		Action:      signinPath,
		ShowCaptcha: h.siteKey != "" && session.SignInAttempts >= h.captchaAfter,
	})
}

func (h *AuthHandler) renderPage(c *gin.Context, name string, data authPageData) {
	session := middleware.GetSession(c)
	data.Messages = session.PopFlash()
	data.Providers = h.oauth.Providers()
	data.SiteKey = h.siteKey

	if len(data.Messages) > 0 {
		if err := middleware.SaveSession(c); err != nil {
			_ = c.Error(err)
			return
		}
	}
	c.HTML(http.StatusOK, name, data)
}

// Signup godoc
// @Summary Sign up with username and password
// @Description Creates an unverified account, mails its verification link and logs the user in.
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param signup body dto.SignupRequest true "Signup form"
// @Success 201 {object} dto.AuthSuccessResponse
// @Success 302 "Redirect for browser clients"
// @Failure 400 {object} dto.AuthErrorResponse
// @Failure 401 {object} dto.AuthErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var req dto.SignupRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.Warn("Failed to bind signup request", slog.String("error", err.Error()))
		respondAuthFailure(c, apperrors.NewAuthFailureWithCause(apperrors.ErrValidation, "Invalid request"), signupPath)
		return
	}

	user, err := h.localAuth.SignUp(c.Request.Context(), req, middleware.GetAccessInfo(c))
	if err != nil {
		if failure, ok := apperrors.AsAuthFailure(err); ok {
			logger.Info("Signup rejected", slog.Any("messages", failure.Messages))
			respondAuthFailure(c, failure, signupPath)
			return
		}
		_ = c.Error(err)
		return
	}

	if !logInUser(c, h.sessions, user) {
		return
	}
	middleware.PosthogEvent(c, "user_signed_up", map[string]any{"provider": string(domain.ProviderLocal)})
	logger.Info("User signed up", slog.String("user_id", user.UserID))

	message := "A verification email has been sent to " + user.Email
	if wantsJSON(c) {
		c.JSON(http.StatusCreated, dto.AuthSuccessResponse{User: dto.ToUserResponse(user), Messages: []string{message}})
		return
	}
	// The success redirect target renders no flash messages, the signin page does.
	respondMessage(c, http.StatusCreated, signinPath, message)
}

// Signin godoc
// @Summary Sign in with username and password
// @Description Checks the credentials and establishes a session. After repeated failures the captcha field is required.
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param signin body dto.SigninRequest true "Signin form"
// @Success 200 {object} dto.AuthSuccessResponse
// @Success 302 "Redirect for browser clients"
// @Failure 400 {object} dto.AuthErrorResponse
// @Failure 401 {object} dto.AuthErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/signin [post]
func (h *AuthHandler) Signin(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	session := middleware.GetSession(c)

	var req dto.SigninRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.Warn("Failed to bind signin request", slog.String("error", err.Error()))
		session.RecordFailedSignIn()
		respondAuthFailure(c, apperrors.NewAuthFailureWithCause(apperrors.ErrValidation, "Invalid request"), signinPath)
		return
	}

	user, err := h.localAuth.SignIn(c.Request.Context(), req, session.SignInAttempts, middleware.GetAccessInfo(c))
	if err != nil {
		if failure, ok := apperrors.AsAuthFailure(err); ok {
			session.RecordFailedSignIn()
			logger.Info("Signin rejected",
				slog.String("username", req.Username),
				slog.Int("failed_attempts", session.SignInAttempts))
			respondAuthFailure(c, failure, signinPath)
			return
		}
		_ = c.Error(err)
		return
	}

	if !logInUser(c, h.sessions, user) {
		return
	}
	middleware.PosthogEvent(c, "user_signed_in", map[string]any{"provider": string(domain.ProviderLocal)})

	if wantsJSON(c) {
		c.JSON(http.StatusOK, dto.AuthSuccessResponse{User: dto.ToUserResponse(user)})
		return
	}
	c.Redirect(http.StatusFound, h.successRedirect)
}

// logInUser serializes user into the session and sends the new session cookie.
// It reports false after pushing an error to the error channel.
func logInUser(c *gin.Context, sessions portssvc.SessionSvcFacade, user *domain.User) bool {
	session := middleware.GetSession(c)
	if err := sessions.LogIn(c.Request.Context(), session, user); err != nil {
		_ = c.Error(err)
		return false
	}
	middleware.SetSession(c, session)
	middleware.WriteSessionCookie(c)
	middleware.SetCurrentUser(c, user)
	return true
}

// Logout godoc
// @Summary Log out
// @Description Destroys the session.
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Success 302 "Redirect for browser clients"
// @Router /auth/logout [get]
func (h *AuthHandler) Logout(c *gin.Context) {
	fresh, err := h.sessions.LogOut(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	middleware.SetSession(c, fresh)
	middleware.ClearSessionCookie(c)

	if wantsJSON(c) {
		c.JSON(http.StatusOK, MessageResponse{Messages: []string{"Logged out"}})
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// VerifyEmail godoc
// @Summary Verify an email address
// @Description Confirms the token mailed at signup.
// @Tags auth
// @Produce json
// @Param token query string true "Verification token"
// @Success 200 {object} MessageResponse
// @Success 302 "Redirect for browser clients"
// @Failure 400 {object} MessageResponse
// @Router /auth/verify [get]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		respondMessage(c, http.StatusBadRequest, signinPath, "Verification link is invalid or has expired")
		return
	}

	user, err := h.verification.ConfirmEmail(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidToken) {
			respondMessage(c, http.StatusBadRequest, signinPath, "Verification link is invalid or has expired")
			return
		}
		_ = c.Error(err)
		return
	}

	middleware.GetLoggerFromContext(c).Info("Email verified", slog.String("user_id", user.UserID))
	respondMessage(c, http.StatusOK, signinPath, "Your email has been verified, you can now sign in")
}

// CurrentUser godoc
// @Summary Current user
// @Description Returns the user of the session, or null when anonymous.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Router /auth/current_user [get]
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
