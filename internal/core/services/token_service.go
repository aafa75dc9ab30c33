package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/gallery_app/internal/apperrors"
	"github.com/SscSPs/gallery_app/internal/core/domain"
	portssvc "github.com/SscSPs/gallery_app/internal/core/ports/services"
	"github.com/SscSPs/gallery_app/internal/utils"
)

// verificationAudience keeps verification tokens from being accepted anywhere else.
const verificationAudience = "email-verification"

// tokenService issues the signed tokens mailed to users to confirm their address.
type tokenService struct {
	secret string
	issuer string
	expiry time.Duration
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(secret, issuer string, expiry time.Duration) portssvc.TokenSvcFacade {
	return &tokenService{
		secret: secret,
		issuer: issuer,
		expiry: expiry,
	}
}

// GenerateVerificationToken creates a token for the given user and returns when it expires.
func (s *tokenService) GenerateVerificationToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.expiry)
	token, err := utils.GenerateJWT(user.UserID, s.secret, s.expiry, s.issuer, verificationAudience)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign verification token: %w", err)
	}
	return token, expiresAt, nil
}

// ParseVerificationToken validates token and returns its subject.
func (s *tokenService) ParseVerificationToken(ctx context.Context, token string) (string, error) {
	claims, err := utils.ParseAndValidateJWT(token, s.secret, s.issuer, verificationAudience)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", apperrors.ErrInvalidToken)
	}
	return claims.Subject, nil
}
