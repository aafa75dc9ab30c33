package services

import (
	"context"

	"github.com/SscSPs/gallery_app/internal/core/domain"
	"github.com/SscSPs/gallery_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByUsername retrieves a user by username.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetUserByProviderID retrieves the user linked to an external identity.
	GetUserByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error)

	// UsernameExists reports whether an account already uses username.
	UsernameExists(ctx context.Context, username string) (bool, error)

	// EmailExists reports whether an account already uses email.
	EmailExists(ctx context.Context, email string) (bool, error)

	// ListUsers retrieves a page of users and the token of the next page ("" when done).
	ListUsers(ctx context.Context, limit int, pageToken string) ([]domain.User, string, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser creates a new user. The first account ever created becomes the admin.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// RecordLogin stores the access info of a successful login.
	RecordLogin(ctx context.Context, user *domain.User, access domain.AccessInfo) (*domain.User, error)

	// MarkVerified flags the user's email as verified.
	MarkVerified(ctx context.Context, userID string) (*domain.User, error)

	// AvailableUsername derives an unused username from base.
	AvailableUsername(ctx context.Context, base string) (string, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}
