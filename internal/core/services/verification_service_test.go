package services_test

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/gallery_app/internal/apperrors"
	"github.com/SscSPs/gallery_app/internal/core/domain"
	"github.com/SscSPs/gallery_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendVerificationEmail(ctx context.Context, user *domain.User, link string) error {
	args := m.Called(ctx, user, link)
	return args.Error(0)
}

func TestTokenService_RoundTrip(t *testing.T) {
	tokens := services.NewTokenService("test-secret", "gallery-test", time.Hour)
	ctx := context.Background()

	token, expiresAt, err := tokens.GenerateVerificationToken(ctx, &domain.User{UserID: "user-1"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	userID, err := tokens.ParseVerificationToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestTokenService_RejectsForeignTokens(t *testing.T) {
	ctx := context.Background()
	token, _, err := services.NewTokenService("other-secret", "gallery-test", time.Hour).
		GenerateVerificationToken(ctx, &domain.User{UserID: "user-1"})
	require.NoError(t, err)

	_, err = services.NewTokenService("test-secret", "gallery-test", time.Hour).ParseVerificationToken(ctx, token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	_, err = services.NewTokenService("test-secret", "gallery-test", time.Hour).ParseVerificationToken(ctx, "garbage")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestVerificationService_SendAndConfirm(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	mailer := new(MockMailer)
	tokens := services.NewTokenService("test-secret", "gallery-test", time.Hour)
	svc := services.NewVerificationService(tokens, mailer, services.NewUserService(repo), "http://localhost:5000")

	user := &domain.User{UserID: "user-1", Email: "alice@example.com"}
	var link string
	mailer.On("SendVerificationEmail", ctx, user, mock.MatchedBy(func(l string) bool {
		return strings.HasPrefix(l, "http://localhost:5000/auth/verify?token=")
	})).Run(func(args mock.Arguments) {
		link = args.String(2)
	}).Return(nil).Once()

	require.NoError(t, svc.SendVerification(ctx, user))

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	token := parsed.Query().Get("token")
	require.NotEmpty(t, token)

	repo.On("FindUserByID", ctx, "user-1").Return(&domain.User{UserID: "user-1", Email: "alice@example.com"}, nil).Once()
	repo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool { return u.Verified })).Return(nil).Once()

	verified, err := svc.ConfirmEmail(ctx, token)
	require.NoError(t, err)
	assert.True(t, verified.Verified)
	mailer.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestVerificationService_SendWithoutEmail(t *testing.T) {
	mailer := new(MockMailer)
	svc := services.NewVerificationService(services.NewTokenService("s", "i", time.Hour), mailer, services.NewUserService(new(MockUserRepository)), "")

	err := svc.SendVerification(context.Background(), &domain.User{UserID: "user-1"})

	assert.Error(t, err)
	mailer.AssertNotCalled(t, "SendVerificationEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerificationService_ConfirmUnknownUser(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	tokens := services.NewTokenService("test-secret", "gallery-test", time.Hour)
	svc := services.NewVerificationService(tokens, new(MockMailer), services.NewUserService(repo), "")

	token, _, err := tokens.GenerateVerificationToken(ctx, &domain.User{UserID: "deleted"})
	require.NoError(t, err)
	repo.On("FindUserByID", ctx, "deleted").Return(nil, apperrors.ErrNotFound).Once()

	_, err = svc.ConfirmEmail(ctx, token)

	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
