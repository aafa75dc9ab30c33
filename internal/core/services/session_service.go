package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/gallery_app/internal/apperrors"
	"github.com/SscSPs/gallery_app/internal/core/domain"
	portsrepo "github.com/SscSPs/gallery_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/gallery_app/internal/core/ports/services"
	"github.com/SscSPs/gallery_app/internal/utils"
)

// sessionIDBytes is the entropy of a session ID before encoding.
const sessionIDBytes = 32

// SessionService keeps sessions in a SessionStore and serializes users into them by ID.
type SessionService struct {
	BaseService
	store  portsrepo.SessionStore
	users  portssvc.UserReaderSvc
	maxAge time.Duration
}

func NewSessionService(store portsrepo.SessionStore, users portssvc.UserReaderSvc, maxAge time.Duration) *SessionService {
	return &SessionService{store: store, users: users, maxAge: maxAge}
}

var _ portssvc.SessionSvcFacade = (*SessionService)(nil)

func (s *SessionService) MaxAge() time.Duration {
	return s.maxAge
}

func (s *SessionService) Load(ctx context.Context, id string) (*domain.Session, error) {
	if id == "" {
		return newSession()
	}

	session, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return newSession()
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	session.ID = id
	return session, nil
}

func (s *SessionService) Save(ctx context.Context, session *domain.Session) error {
	if session.ID == "" {
		id, err := utils.GenerateSecureToken(sessionIDBytes)
		if err != nil {
			return err
		}
		session.ID = id
	}
	if err := s.store.Save(ctx, session, s.maxAge); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// LogIn serializes user into the session under a fresh ID so that an ID planted
// before authentication cannot be reused afterwards.
func (s *SessionService) LogIn(ctx context.Context, session *domain.Session, user *domain.User) error {
	if session.ID != "" {
		if err := s.store.Delete(ctx, session.ID); err != nil {
			return fmt.Errorf("failed to drop pre-login session: %w", err)
		}
	}

	id, err := utils.GenerateSecureToken(sessionIDBytes)
	if err != nil {
		return err
	}
	session.ID = id
	session.UserID = user.UserID
	session.ResetSignIns()

	if err := s.Save(ctx, session); err != nil {
		return err
	}
	s.LogDebug(ctx, "User serialized into session", slog.String("user_id", user.UserID))
	return nil
}

func (s *SessionService) LogOut(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	if session.ID != "" {
		if err := s.store.Delete(ctx, session.ID); err != nil {
			return nil, fmt.Errorf("failed to destroy session: %w", err)
		}
	}
	return newSession()
}

func (s *SessionService) DeserializeUser(ctx context.Context, session *domain.Session) (*domain.User, error) {
	if !session.IsAuthenticated() {
		return nil, nil
	}

	user, err := s.users.GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			session.UserID = ""
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func newSession() (*domain.Session, error) {
	id, err := utils.GenerateSecureToken(sessionIDBytes)
	if err != nil {
		return nil, err
	}
	return &domain.Session{ID: id, CreatedAt: time.Now().UTC()}, nil
}
