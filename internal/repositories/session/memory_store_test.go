package session

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/gallery_app/internal/apperrors"
	"github.com/SscSPs/gallery_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10, time.Hour)

	s := &domain.Session{ID: "abc", UserID: "u1", SignInAttempts: 2, Flash: []string{"hello"}}
	require.NoError(t, store.Save(ctx, s, time.Hour))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, 2, got.SignInAttempts)
	assert.Equal(t, []string{"hello"}, got.Flash)

	require.NoError(t, store.Delete(ctx, "abc"))
	_, err = store.Get(ctx, "abc")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMemoryStore_UnknownID(t *testing.T) {
	store := NewMemoryStore(10, time.Hour)
	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, store.Delete(context.Background(), "missing"))
}

func TestMemoryStore_CopiesSessions(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10, time.Hour)

	s := &domain.Session{ID: "abc", Flash: []string{"one"}}
	require.NoError(t, store.Save(ctx, s, time.Hour))

	// Mutating the caller's value after Save must not leak into the store
	s.UserID = "u1"
	s.Flash[0] = "changed"

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, got.UserID)
	assert.Equal(t, []string{"one"}, got.Flash)

	got.AddFlash("two")
	again, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, []string{"one"}, again.Flash)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10, 20*time.Millisecond)

	require.NoError(t, store.Save(ctx, &domain.Session{ID: "abc"}, 0))
	assert.Eventually(t, func() bool {
		_, err := store.Get(ctx, "abc")
		return err != nil
	}, time.Second, 10*time.Millisecond)
}

func TestMemoryStore_EvictsOldest(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(2, time.Hour)

	require.NoError(t, store.Save(ctx, &domain.Session{ID: "a"}, 0))
	require.NoError(t, store.Save(ctx, &domain.Session{ID: "b"}, 0))
	require.NoError(t, store.Save(ctx, &domain.Session{ID: "c"}, 0))

	assert.Equal(t, 2, store.Len())
	_, err := store.Get(ctx, "a")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
