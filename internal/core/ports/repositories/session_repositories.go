package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/gallery_app/internal/core/domain"
)

// SessionStore persists sessions keyed by their cookie ID.
type SessionStore interface {
	// Get returns the session stored under id, or apperrors.ErrNotFound.
	Get(ctx context.Context, id string) (*domain.Session, error)

	// Save stores the session, replacing any previous value, for ttl.
	Save(ctx context.Context, session *domain.Session, ttl time.Duration) error

	// Delete removes the session. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error
}
