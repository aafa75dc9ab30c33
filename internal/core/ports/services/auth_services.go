package services

import (
	"context"
	"time"

	"github.com/SscSPs/gallery_app/internal/core/domain"
	"github.com/SscSPs/gallery_app/internal/dto"
)

// LocalAuthSvc implements the username/password strategies.
// Rejections are returned as *apperrors.AuthFailure; any other error is unexpected.
type LocalAuthSvc interface {
	// SignUp validates the form, consults the human verifier and creates the account.
	SignUp(ctx context.Context, req dto.SignupRequest, access domain.AccessInfo) (*domain.User, error)

	// SignIn checks the credentials. failedAttempts is the number of consecutive
	// failures already recorded in the caller's session.
	SignIn(ctx context.Context, req dto.SigninRequest, failedAttempts int, access domain.AccessInfo) (*domain.User, error)
}

// OAuthSvcFacade implements the external provider strategies.
type OAuthSvcFacade interface {
	// Providers lists the providers that have credentials configured.
	Providers() []domain.AuthProvider

	// HasProvider reports whether provider is configured.
	HasProvider(provider domain.AuthProvider) bool

	// AuthCodeURL returns the provider consent page URL for state.
	// verifier is the PKCE verifier to pair with the later exchange.
	AuthCodeURL(provider domain.AuthProvider, state, verifier string) (string, error)

	// Authenticate exchanges the callback code and finds or creates the matching user.
	Authenticate(ctx context.Context, provider domain.AuthProvider, code, verifier string, access domain.AccessInfo) (*domain.User, error)
}

// HumanVerifierSvc is the external verification gate (reCAPTCHA).
type HumanVerifierSvc interface {
	// Verify checks the client's challenge response. A rejection is an *apperrors.AuthFailure.
	Verify(ctx context.Context, response string, remoteIP string) error
}

// TokenSvcFacade issues and checks email verification tokens.
type TokenSvcFacade interface {
	GenerateVerificationToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	// ParseVerificationToken returns the user ID the token was issued for.
	ParseVerificationToken(ctx context.Context, token string) (string, error)
}

// MailerSvc delivers account emails.
type MailerSvc interface {
	SendVerificationEmail(ctx context.Context, user *domain.User, link string) error
}

// VerificationSvc ties tokens and mail together for the email verification flow.
type VerificationSvc interface {
	SendVerification(ctx context.Context, user *domain.User) error
	ConfirmEmail(ctx context.Context, token string) (*domain.User, error)
}
