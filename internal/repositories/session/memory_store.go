package session

import (
	"context"
	"time"

	"github.com/SscSPs/gallery_app/internal/apperrors"
	"github.com/SscSPs/gallery_app/internal/core/domain"
	portsrepo "github.com/SscSPs/gallery_app/internal/core/ports/repositories"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultMemoryStoreSize bounds the number of sessions kept by a MemoryStore.
const DefaultMemoryStoreSize = 10000

// MemoryStore keeps sessions in process memory. Entries expire after the TTL
// given at construction; the least recently used ones are evicted when full.
// Sessions are copied in and out so callers never share state.
type MemoryStore struct {
	cache *expirable.LRU[string, *domain.Session]
}

func NewMemoryStore(size int, ttl time.Duration) *MemoryStore {
	if size <= 0 {
		size = DefaultMemoryStoreSize
	}
	return &MemoryStore{cache: expirable.NewLRU[string, *domain.Session](size, nil, ttl)}
}

var _ portsrepo.SessionStore = (*MemoryStore)(nil)

func (s *MemoryStore) Get(_ context.Context, id string) (*domain.Session, error) {
	session, ok := s.cache.Get(id)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return session.Clone(), nil
}

// Save stores the session. ttl is ignored; the store-wide TTL applies.
func (s *MemoryStore) Save(_ context.Context, session *domain.Session, _ time.Duration) error {
	s.cache.Add(session.ID, session.Clone())
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.cache.Remove(id)
	return nil
}

// Len reports the number of live sessions.
func (s *MemoryStore) Len() int {
	return s.cache.Len()
}
