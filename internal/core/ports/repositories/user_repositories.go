package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/gallery_app/internal/core/domain"
)

// UserCursor marks the last user of a listing page.
type UserCursor struct {
	CreatedAt time.Time
	UserID    string
}

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by their unique username.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindUserByEmail retrieves a user by their unique email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByProviderID retrieves the user linked to an external provider identity.
	FindUserByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error)

	// FindAdmin retrieves the admin account, if one exists.
	FindAdmin(ctx context.Context) (*domain.User, error)

	// FindUsers retrieves users ordered by creation time, starting after the cursor when one is given.
	FindUsers(ctx context.Context, limit int, after *UserCursor) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates an existing user's details.
	UpdateUser(ctx context.Context, user domain.User) error
}

// UserRepositoryFacade combines all user-related repository interfaces
// This is a facade for clients that need access to all operations
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
