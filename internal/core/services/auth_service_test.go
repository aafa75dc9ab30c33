package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/gallery_app/internal/apperrors"
	"github.com/SscSPs/gallery_app/internal/core/domain"
	"github.com/SscSPs/gallery_app/internal/core/services"
	"github.com/SscSPs/gallery_app/internal/dto"
	"github.com/SscSPs/gallery_app/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockHumanVerifier struct {
	mock.Mock
}

func (m *MockHumanVerifier) Verify(ctx context.Context, response string, remoteIP string) error {
	args := m.Called(ctx, response, remoteIP)
	return args.Error(0)
}

type MockVerificationSvc struct {
	mock.Mock
}

func (m *MockVerificationSvc) SendVerification(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockVerificationSvc) ConfirmEmail(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	return userArg(args)
}

type AuthServiceTestSuite struct {
	suite.Suite
	ctx              context.Context
	access           domain.AccessInfo
	mockUserRepo     *MockUserRepository
	mockVerifier     *MockHumanVerifier
	mockVerification *MockVerificationSvc
	service          *services.AuthService
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.access = domain.AccessInfo{IP: "10.0.0.1", UserAgent: "test-agent", At: time.Now().UTC()}
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockVerifier = new(MockHumanVerifier)
	suite.mockVerification = new(MockVerificationSvc)
	suite.service = services.NewAuthService(
		services.NewUserService(suite.mockUserRepo),
		suite.mockVerifier,
		suite.mockVerification,
	)
}

func (suite *AuthServiceTestSuite) requireFailure(err error, messages ...string) *apperrors.AuthFailure {
	suite.Require().Error(err)
	failure, ok := apperrors.AsAuthFailure(err)
	suite.Require().True(ok, "expected an auth failure, got %v", err)
	suite.Equal(messages, failure.Messages)
	return failure
}

func (suite *AuthServiceTestSuite) storedUser(username, password string, verified, enabled bool) *domain.User {
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	return &domain.User{
		UserID:       "user-1",
		Username:     username,
		PasswordHash: &hash,
		Verified:     verified,
		Enabled:      enabled,
	}
}

// --- SignUp ---
func (suite *AuthServiceTestSuite) TestSignUp_Success() {
	req := dto.SignupRequest{Username: " alice ", Email: "alice@example.com", Password: "secret123", Captcha: "captcha-ok"}

	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "alice").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", suite.ctx, "alice@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockVerifier.On("Verify", suite.ctx, "captcha-ok", "10.0.0.1").Return(nil).Once()
	suite.mockUserRepo.On("FindAdmin", suite.ctx).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", suite.ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()
	suite.mockVerification.On("SendVerification", suite.ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()

	user, err := suite.service.SignUp(suite.ctx, req, suite.access)

	suite.Require().NoError(err)
	suite.Equal("alice", user.Username)
	suite.False(user.Verified)
	suite.True(user.Admin)
	suite.True(utils.CheckPasswordHash("secret123", user.PasswordHash))
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockVerifier.AssertExpectations(suite.T())
	suite.mockVerification.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestSignUp_ValidationFailure() {
	req := dto.SignupRequest{Username: "ab", Email: "not-an-email", Password: "123"}

	_, err := suite.service.SignUp(suite.ctx, req, suite.access)

	failure := suite.requireFailure(err,
		"Username must be between 3 and 50 characters",
		"Invalid email",
		"Password must be at least 6 characters",
	)
	suite.ErrorIs(failure, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByUsername", mock.Anything, mock.Anything)
	suite.mockVerifier.AssertNotCalled(suite.T(), "Verify", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestSignUp_EmailTooLong() {
	email := strings.Repeat("a", 64) + "@" + strings.Repeat("b", 60) + "." + strings.Repeat("c", 60) + "." + strings.Repeat("d", 60) + "." + strings.Repeat("e", 60) + ".com"
	suite.Require().Greater(len(email), 254)
	req := dto.SignupRequest{Username: "alice", Email: email, Password: "secret123"}

	_, err := suite.service.SignUp(suite.ctx, req, suite.access)

	failure := suite.requireFailure(err, "Email must be at most 254 characters")
	suite.ErrorIs(failure, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByEmail", mock.Anything, mock.Anything)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestSignUp_UsernameAndEmailTaken() {
	req := dto.SignupRequest{Username: "alice", Email: "alice@example.com", Password: "secret123"}

	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "alice").Return(&domain.User{}, nil).Once()
	suite.mockUserRepo.On("FindUserByEmail", suite.ctx, "alice@example.com").Return(&domain.User{}, nil).Once()

	_, err := suite.service.SignUp(suite.ctx, req, suite.access)

	failure := suite.requireFailure(err, services.MsgUsernameTaken, services.MsgEmailInUse)
	suite.ErrorIs(failure, apperrors.ErrDuplicate)
	suite.mockVerifier.AssertNotCalled(suite.T(), "Verify", mock.Anything, mock.Anything, mock.Anything)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestSignUp_CaptchaRejected() {
	req := dto.SignupRequest{Username: "alice", Email: "alice@example.com", Password: "secret123"}

	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "alice").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", suite.ctx, "alice@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockVerifier.On("Verify", suite.ctx, "", "10.0.0.1").
		Return(apperrors.NewAuthFailureWithCause(apperrors.ErrVerificationFailed, "Please complete the captcha")).Once()

	_, err := suite.service.SignUp(suite.ctx, req, suite.access)

	failure := suite.requireFailure(err, "Please complete the captcha")
	suite.ErrorIs(failure, apperrors.ErrVerificationFailed)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestSignUp_LostUniqueRace() {
	req := dto.SignupRequest{Username: "alice", Email: "alice@example.com", Password: "secret123"}

	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "alice").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", suite.ctx, "alice@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockVerifier.On("Verify", suite.ctx, "", "10.0.0.1").Return(nil).Once()
	suite.mockUserRepo.On("FindAdmin", suite.ctx).Return(&domain.User{Admin: true}, nil).Once()
	suite.mockUserRepo.On("SaveUser", suite.ctx, mock.AnythingOfType("domain.User")).
		Return(&apperrors.DuplicateError{Field: "email"}).Once()

	_, err := suite.service.SignUp(suite.ctx, req, suite.access)

	failure := suite.requireFailure(err, services.MsgEmailInUse)
	suite.ErrorIs(failure, apperrors.ErrDuplicate)
	suite.mockVerification.AssertNotCalled(suite.T(), "SendVerification", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestSignUp_VerificationMailFails() {
	req := dto.SignupRequest{Username: "alice", Email: "alice@example.com", Password: "secret123"}

	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "alice").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", suite.ctx, "alice@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockVerifier.On("Verify", suite.ctx, "", "10.0.0.1").Return(nil).Once()
	suite.mockUserRepo.On("FindAdmin", suite.ctx).Return(&domain.User{Admin: true}, nil).Once()
	suite.mockUserRepo.On("SaveUser", suite.ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()
	suite.mockVerification.On("SendVerification", suite.ctx, mock.AnythingOfType("*domain.User")).Return(assert.AnError).Once()

	_, err := suite.service.SignUp(suite.ctx, req, suite.access)

	failure := suite.requireFailure(err, services.MsgVerificationNotSent)
	suite.ErrorIs(failure, assert.AnError)
}

// --- SignIn ---
func (suite *AuthServiceTestSuite) TestSignIn_Success() {
	stored := suite.storedUser("alice", "secret123", true, true)
	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "alice").Return(stored, nil).Once()
	suite.mockUserRepo.On("UpdateUser", suite.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.UserID == stored.UserID && u.Login == suite.access
	})).Return(nil).Once()

	user, err := suite.service.SignIn(suite.ctx, dto.SigninRequest{Username: "alice", Password: "secret123"}, 0, suite.access)

	suite.Require().NoError(err)
	suite.Equal(suite.access, user.Login)
	suite.mockVerifier.AssertNotCalled(suite.T(), "Verify", mock.Anything, mock.Anything, mock.Anything)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestSignIn_UnknownUser() {
	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.SignIn(suite.ctx, dto.SigninRequest{Username: "ghost", Password: "secret123"}, 0, suite.access)

	failure := suite.requireFailure(err, services.MsgLoginFailed)
	suite.ErrorIs(failure, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestSignIn_WrongPassword() {
	stored := suite.storedUser("alice", "secret123", true, true)
	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "alice").Return(stored, nil).Once()

	_, err := suite.service.SignIn(suite.ctx, dto.SigninRequest{Username: "alice", Password: "wrong-password"}, 0, suite.access)

	suite.requireFailure(err, services.MsgLoginFailed)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestSignIn_ProviderOnlyAccount() {
	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "dana").
		Return(&domain.User{UserID: "user-2", Username: "dana", Verified: true, Enabled: true}, nil).Once()

	_, err := suite.service.SignIn(suite.ctx, dto.SigninRequest{Username: "dana", Password: "anything"}, 0, suite.access)

	suite.requireFailure(err, services.MsgLoginFailed)
}

func (suite *AuthServiceTestSuite) TestSignIn_UnverifiedEmail() {
	stored := suite.storedUser("alice", "secret123", false, true)
	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "alice").Return(stored, nil).Once()

	_, err := suite.service.SignIn(suite.ctx, dto.SigninRequest{Username: "alice", Password: "secret123"}, 0, suite.access)

	suite.requireFailure(err, services.MsgEmailNotVerified)
}

func (suite *AuthServiceTestSuite) TestSignIn_DisabledAccount() {
	stored := suite.storedUser("alice", "secret123", true, false)
	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "alice").Return(stored, nil).Once()

	_, err := suite.service.SignIn(suite.ctx, dto.SigninRequest{Username: "alice", Password: "secret123"}, 0, suite.access)

	suite.requireFailure(err, services.MsgAccountDisabled)
}

func (suite *AuthServiceTestSuite) TestSignIn_MissingFields() {
	_, err := suite.service.SignIn(suite.ctx, dto.SigninRequest{}, 0, suite.access)

	failure := suite.requireFailure(err, "Username is required", "Password is required")
	suite.ErrorIs(failure, apperrors.ErrValidation)
}

func (suite *AuthServiceTestSuite) TestSignIn_CaptchaCheckedBeforeCredentials() {
	suite.mockVerifier.On("Verify", suite.ctx, "", "10.0.0.1").
		Return(apperrors.NewAuthFailureWithCause(apperrors.ErrVerificationFailed, "Please complete the captcha")).Once()

	_, err := suite.service.SignIn(suite.ctx,
		dto.SigninRequest{Username: "alice", Password: "secret123"},
		services.DefaultSignInCaptchaAfter, suite.access)

	suite.requireFailure(err, "Please complete the captcha")
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByUsername", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestSignIn_CaptchaPassedThenCredentials() {
	stored := suite.storedUser("alice", "secret123", true, true)
	suite.mockVerifier.On("Verify", suite.ctx, "captcha-ok", "10.0.0.1").Return(nil).Once()
	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "alice").Return(stored, nil).Once()
	suite.mockUserRepo.On("UpdateUser", suite.ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	_, err := suite.service.SignIn(suite.ctx,
		dto.SigninRequest{Username: "alice", Password: "secret123", Captcha: "captcha-ok"},
		services.DefaultSignInCaptchaAfter+3, suite.access)

	suite.Require().NoError(err)
	suite.mockVerifier.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestSignIn_CustomCaptchaThreshold() {
	service := services.NewAuthService(
		services.NewUserService(suite.mockUserRepo),
		suite.mockVerifier,
		suite.mockVerification,
		services.WithSignInCaptchaAfter(2),
	)
	suite.mockVerifier.On("Verify", suite.ctx, "", "10.0.0.1").
		Return(apperrors.NewAuthFailure("Captcha verification failed, please try again")).Once()

	_, err := service.SignIn(suite.ctx, dto.SigninRequest{Username: "alice", Password: "secret123"}, 2, suite.access)

	suite.requireFailure(err, "Captcha verification failed, please try again")
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
