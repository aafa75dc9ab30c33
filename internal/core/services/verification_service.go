package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/SscSPs/gallery_app/internal/apperrors"
	"github.com/SscSPs/gallery_app/internal/core/domain"
	portssvc "github.com/SscSPs/gallery_app/internal/core/ports/services"
)

// VerificationService mails verification links and confirms them when followed.
type VerificationService struct {
	BaseService
	tokens     portssvc.TokenSvcFacade
	mailer     portssvc.MailerSvc
	users      portssvc.UserSvcFacade
	linkPrefix string
}

// NewVerificationService builds links as baseURL + "/auth/verify?token=...".
func NewVerificationService(tokens portssvc.TokenSvcFacade, mailer portssvc.MailerSvc, users portssvc.UserSvcFacade, baseURL string) *VerificationService {
	return &VerificationService{
		tokens:     tokens,
		mailer:     mailer,
		users:      users,
		linkPrefix: baseURL + "/auth/verify?token=",
	}
}

var _ portssvc.VerificationSvc = (*VerificationService)(nil)

func (s *VerificationService) SendVerification(ctx context.Context, user *domain.User) error {
	if user.Email == "" {
		return fmt.Errorf("user %s has no email address", user.UserID)
	}

	token, expiresAt, err := s.tokens.GenerateVerificationToken(ctx, user)
	if err != nil {
		return err
	}

	if err := s.mailer.SendVerificationEmail(ctx, user, s.linkPrefix+url.QueryEscape(token)); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	s.LogInfo(ctx, "Verification email sent",
		slog.String("user_id", user.UserID),
		slog.Time("expires_at", expiresAt))
	return nil
}

// ConfirmEmail marks the token's user as verified. Tokens that are invalid or
// name an unknown user yield apperrors.ErrInvalidToken.
func (s *VerificationService) ConfirmEmail(ctx context.Context, token string) (*domain.User, error) {
	userID, err := s.tokens.ParseVerificationToken(ctx, token)
	if err != nil {
		s.LogWarn(ctx, "Rejected verification token", slog.String("error", err.Error()))
		return nil, err
	}

	user, err := s.users.MarkVerified(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown user", apperrors.ErrInvalidToken)
		}
		return nil, err
	}
	return user, nil
}
