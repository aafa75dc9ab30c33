package services

import (
	"context"
	"time"

	"github.com/SscSPs/gallery_app/internal/core/domain"
)

// SessionSvcFacade manages sessions and the user (de)serialization into them.
type SessionSvcFacade interface {
	// Load returns the session for id, or a fresh one when id is empty or unknown.
	Load(ctx context.Context, id string) (*domain.Session, error)

	// Save persists the session for MaxAge.
	Save(ctx context.Context, session *domain.Session) error

	// LogIn moves the session to a new ID and serializes user into it.
	LogIn(ctx context.Context, session *domain.Session, user *domain.User) error

	// LogOut destroys the session and returns a fresh anonymous one.
	LogOut(ctx context.Context, session *domain.Session) (*domain.Session, error)

	// DeserializeUser looks up the session's user. It returns nil for anonymous
	// sessions and clears the user ID of sessions whose user no longer exists.
	DeserializeUser(ctx context.Context, session *domain.Session) (*domain.User, error)

	// MaxAge is how long an idle session lives.
	MaxAge() time.Duration
}
