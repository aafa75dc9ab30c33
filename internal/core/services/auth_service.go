package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/gallery_app/internal/apperrors"
	"github.com/SscSPs/gallery_app/internal/core/domain"
	portssvc "github.com/SscSPs/gallery_app/internal/core/ports/services"
	"github.com/SscSPs/gallery_app/internal/dto"
	"github.com/SscSPs/gallery_app/internal/platform/config"
	"github.com/SscSPs/gallery_app/internal/utils"
	"github.com/go-playground/validator/v10"
)

// User-facing messages of the local strategies.
const (
	MsgUsernameTaken       = "Username already taken, choose a different username"
	MsgEmailInUse          = "Email already in use"
	MsgLoginFailed         = "Login failed. Check your username/password"
	MsgEmailNotVerified    = "Account email hasn't been verified. Check your email for instructions for verifying your email."
	MsgAccountDisabled     = "Account is disabled, please contact us for more information"
	MsgVerificationNotSent = "Verification email could not be sent"
)

// DefaultSignInCaptchaAfter is the number of consecutive failed signins after which
// the human verification gate guards further attempts.
const DefaultSignInCaptchaAfter = config.DefaultSignInCaptchaAfter

// AuthService implements the local signup and signin strategies.
type AuthService struct {
	BaseService
	users        portssvc.UserSvcFacade
	verifier     portssvc.HumanVerifierSvc
	verification portssvc.VerificationSvc
	validate     *validator.Validate
	captchaAfter int
}

// AuthOption defines a functional option for configuring the AuthService
type AuthOption func(*AuthService)

// WithSignInCaptchaAfter changes the failure count that turns on the captcha for signin.
func WithSignInCaptchaAfter(n int) AuthOption {
	return func(s *AuthService) {
		if n > 0 {
			s.captchaAfter = n
		}
	}
}

func NewAuthService(users portssvc.UserSvcFacade, verifier portssvc.HumanVerifierSvc, verification portssvc.VerificationSvc, options ...AuthOption) *AuthService {
	s := &AuthService{
		users:        users,
		verifier:     verifier,
		verification: verification,
		validate:     validator.New(),
		captchaAfter: DefaultSignInCaptchaAfter,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

var _ portssvc.LocalAuthSvc = (*AuthService)(nil)

// SignUp creates an unverified local account and mails its verification link.
func (s *AuthService) SignUp(ctx context.Context, req dto.SignupRequest, access domain.AccessInfo) (*domain.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.NewAuthFailureWithCause(apperrors.ErrValidation, validationMessages(err)...)
	}

	var messages []string
	taken, err := s.users.UsernameExists(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		messages = append(messages, MsgUsernameTaken)
	}
	taken, err = s.users.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		messages = append(messages, MsgEmailInUse)
	}
	if len(messages) > 0 {
		return nil, apperrors.NewAuthFailureWithCause(apperrors.ErrDuplicate, messages...)
	}

	if err := s.verifier.Verify(ctx, req.Captcha, access.IP); err != nil {
		return nil, err
	}

	user, err := s.users.CreateUser(ctx, dto.CreateUserRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Provider: domain.ProviderLocal,
		Verified: false,
		Access:   access,
	})
	if err != nil {
		// Lost a race against a concurrent signup for the same name or address
		var dup *apperrors.DuplicateError
		if errors.As(err, &dup) {
			return nil, apperrors.NewAuthFailureWithCause(err, duplicateMessage(dup.Field))
		}
		return nil, err
	}

	if err := s.verification.SendVerification(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to send verification email", slog.String("user_id", user.UserID))
		return nil, apperrors.NewAuthFailureWithCause(err, MsgVerificationNotSent)
	}

	return user, nil
}

// SignIn checks local credentials. Once failedAttempts reaches the captcha threshold
// the human verification gate is consulted before the credentials are looked at.
func (s *AuthService) SignIn(ctx context.Context, req dto.SigninRequest, failedAttempts int, access domain.AccessInfo) (*domain.User, error) {
	req.Username = strings.TrimSpace(req.Username)

	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.NewAuthFailureWithCause(apperrors.ErrValidation, validationMessages(err)...)
	}

	if failedAttempts >= s.captchaAfter {
		s.LogDebug(ctx, "Sign-in captcha required", slog.Int("failed_attempts", failedAttempts))
		if err := s.verifier.Verify(ctx, req.Captcha, access.IP); err != nil {
			return nil, err
		}
	}

	user, err := s.users.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAuthFailureWithCause(apperrors.ErrUnauthorized, MsgLoginFailed)
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.NewAuthFailureWithCause(apperrors.ErrUnauthorized, MsgLoginFailed)
	}
	if !user.Verified {
		return nil, apperrors.NewAuthFailureWithCause(apperrors.ErrUnauthorized, MsgEmailNotVerified)
	}
	if !user.Enabled {
		return nil, apperrors.NewAuthFailureWithCause(apperrors.ErrUnauthorized, MsgAccountDisabled)
	}

	return s.users.RecordLogin(ctx, user, access)
}

// validationMessages renders validator errors as the messages shown on the forms.
func validationMessages(err error) []string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return []string{"Invalid request"}
	}

	seen := make(map[string]bool, len(fieldErrors))
	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		msg := fieldMessage(fe)
		if !seen[msg] {
			seen[msg] = true
			messages = append(messages, msg)
		}
	}
	return messages
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "Username":
		if fe.Tag() == "required" {
			return "Username is required"
		}
		return "Username must be between 3 and 50 characters"
	case "Email":
		if fe.Tag() == "max" {
			return "Email must be at most 254 characters"
		}
		return "Invalid email"
	case "Password":
		switch fe.Tag() {
		case "required":
			return "Password is required"
		case "max":
			return "Password must be at most 72 characters"
		default:
			return "Password must be at least 6 characters"
		}
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

func duplicateMessage(field string) string {
	switch field {
	case "email":
		return MsgEmailInUse
	case "username":
		return MsgUsernameTaken
	}
	return fmt.Sprintf("An account with this %s already exists", field)
}
