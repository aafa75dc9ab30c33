package services

import (
	portsrepo "github.com/SscSPs/gallery_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/gallery_app/internal/core/ports/services"
	"github.com/SscSPs/gallery_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, mailer portssvc.MailerSvc) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Users first, everything else builds on them
	container.User = NewUserService(repos.UserRepo)

	tokens := NewTokenService(cfg.VerificationTokenSecret, cfg.TokenIssuer, cfg.VerificationTokenExpiry)
	container.Verification = NewVerificationService(tokens, mailer, container.User, cfg.RedirectDomain)

	verifier := NewRecaptchaService(cfg.RecaptchaSecret, WithRecaptchaVerifyURL(cfg.RecaptchaVerifyURL))
	container.LocalAuth = NewAuthService(
		container.User,
		verifier,
		container.Verification,
		WithSignInCaptchaAfter(cfg.SignInCaptchaAfter),
	)

	container.OAuth = NewOAuthService(cfg, container.User)
	container.Session = NewSessionService(repos.SessionStore, container.User, cfg.SessionMaxAge)

	return container
}
