package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SscSPs/gallery_app/internal/apperrors"
	"github.com/SscSPs/gallery_app/internal/core/domain"
	portsrepo "github.com/SscSPs/gallery_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/gallery_app/internal/core/ports/services"
	"github.com/SscSPs/gallery_app/internal/dto"
	"github.com/SscSPs/gallery_app/internal/utils"
	"github.com/SscSPs/gallery_app/internal/utils/pagination"
	"github.com/google/uuid"
)

const (
	defaultUserPageSize = 20
	maxUserPageSize     = 100
	maxUsernameLength   = 50
	usernameAttempts    = 5
)

type UserService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

func NewUserService(userRepo portsrepo.UserRepositoryFacade) *UserService {
	return &UserService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*UserService)(nil)

// CreateUser persists a new account. The admin flag goes to the first account only;
// if another creation grabbed it concurrently the account is saved as a regular one.
func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	adminExists, err := s.adminExists(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	userID := uuid.NewString()
	user := domain.User{
		UserID:     userID,
		Username:   req.Username,
		Email:      strings.TrimSpace(req.Email),
		GivenName:  req.GivenName,
		FamilyName: req.FamilyName,
		Verified:   req.Verified,
		Enabled:    true,
		Admin:      !adminExists,
		Login:      req.Access,
		Registered: req.Access,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if req.Provider != "" && req.Provider != domain.ProviderLocal {
		user.SetProviderID(req.Provider, req.ProviderUserID)
	}
	if req.Password != "" {
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = &hash
	}

	err = s.userRepo.SaveUser(ctx, user)
	if errors.Is(err, apperrors.ErrAdminAlreadyGranted) && user.Admin {
		s.LogWarn(ctx, "Admin was granted concurrently, creating user without admin", slog.String("user_id", userID))
		user.Admin = false
		err = s.userRepo.SaveUser(ctx, user)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user in service: %w", err)
	}

	s.LogInfo(ctx, "User created",
		slog.String("user_id", user.UserID),
		slog.String("provider", string(providerOrLocal(req.Provider))),
		slog.Bool("admin", user.Admin))
	return &user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID in service: %w", err)
	}
	return user, nil
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username in service: %w", err)
	}
	return user, nil
}

func (s *UserService) GetUserByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByProviderID(ctx, provider, providerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by %s ID in service: %w", provider, err)
	}
	return user, nil
}

func (s *UserService) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := s.userRepo.FindUserByUsername(ctx, username)
	return exists(err)
}

func (s *UserService) EmailExists(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, nil
	}
	_, err := s.userRepo.FindUserByEmail(ctx, email)
	return exists(err)
}

// ListUsers returns users in creation order. pageToken continues a previous listing.
func (s *UserService) ListUsers(ctx context.Context, limit int, pageToken string) ([]domain.User, string, error) {
	if limit <= 0 {
		limit = defaultUserPageSize
	}
	if limit > maxUserPageSize {
		limit = maxUserPageSize
	}

	var after *portsrepo.UserCursor
	if pageToken != "" {
		createdAt, id, err := pagination.DecodeToken(pageToken)
		if err != nil {
			return nil, "", apperrors.NewBadRequestError("invalid page token")
		}
		after = &portsrepo.UserCursor{CreatedAt: createdAt, UserID: id}
	}

	// Fetch one extra row to learn whether another page exists.
	users, err := s.userRepo.FindUsers(ctx, limit+1, after)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list users in service: %w", err)
	}

	next := ""
	if len(users) > limit {
		users = users[:limit]
		last := users[limit-1]
		next = pagination.EncodeToken(last.CreatedAt, last.UserID)
	}
	return users, next, nil
}

func (s *UserService) RecordLogin(ctx context.Context, user *domain.User, access domain.AccessInfo) (*domain.User, error) {
	updated := *user
	updated.Login = access
	updated.LastUpdatedAt = time.Now().UTC()
	updated.LastUpdatedBy = user.UserID

	if err := s.userRepo.UpdateUser(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to record login in service: %w", err)
	}
	return &updated, nil
}

func (s *UserService) MarkVerified(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Verified {
		return user, nil
	}

	user.Verified = true
	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = user.UserID
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to mark user verified in service: %w", err)
	}
	s.LogInfo(ctx, "User email verified", slog.String("user_id", user.UserID))
	return user, nil
}

// AvailableUsername returns base when no account uses it, otherwise base with a random suffix.
func (s *UserService) AvailableUsername(ctx context.Context, base string) (string, error) {
	base = strings.Join(strings.Fields(base), "")
	if base == "" {
		base = "user"
	}
	base = truncateRunes(base, maxUsernameLength)

	taken, err := s.UsernameExists(ctx, base)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}

	prefix := truncateRunes(base, maxUsernameLength-7)
	for i := 0; i < usernameAttempts; i++ {
		suffix, err := utils.GenerateSecureRandomString(3)
		if err != nil {
			return "", err
		}
		candidate := prefix + "-" + suffix
		taken, err := s.UsernameExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free username derived from %q", base)
}

func (s *UserService) adminExists(ctx context.Context) (bool, error) {
	_, err := s.userRepo.FindAdmin(ctx)
	ok, err := exists(err)
	if err != nil {
		return false, fmt.Errorf("failed to look up admin: %w", err)
	}
	return ok, nil
}

// exists turns the error of a Find call into a presence flag.
func exists(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return false, nil
	}
	return false, err
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func providerOrLocal(p domain.AuthProvider) domain.AuthProvider {
	if p == "" {
		return domain.ProviderLocal
	}
	return p
}
