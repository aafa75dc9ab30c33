package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/SscSPs/gallery_app/internal/apperrors"
	"github.com/SscSPs/gallery_app/internal/core/domain"
	"github.com/SscSPs/gallery_app/internal/utils"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStore(rdb), mr
}

func TestRedisStore_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	s := &domain.Session{ID: "raw-session-id", UserID: "u1", SignInAttempts: 2, Flash: []string{"hello"}}
	require.NoError(t, store.Save(ctx, s, time.Hour))

	key := redisKeyPrefix + utils.HashToken("raw-session-id")
	assert.Equal(t, []string{key}, mr.Keys(), "only the hashed id is used as key")
	assert.Equal(t, time.Hour, mr.TTL(key))

	raw, err := mr.Get(key)
	require.NoError(t, err)
	assert.NotContains(t, raw, "raw-session-id")
	var stored domain.Session
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Equal(t, "u1", stored.UserID)

	got, err := store.Get(ctx, "raw-session-id")
	require.NoError(t, err)
	assert.Equal(t, "raw-session-id", got.ID)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, 2, got.SignInAttempts)
	assert.Equal(t, []string{"hello"}, got.Flash)

	require.NoError(t, store.Delete(ctx, "raw-session-id"))
	_, err = store.Get(ctx, "raw-session-id")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRedisStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	require.NoError(t, store.Save(ctx, &domain.Session{ID: "sid", UserID: "u1"}, time.Minute))
	mr.FastForward(time.Minute + time.Second)

	_, err := store.Get(ctx, "sid")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRedisStore_UnknownAndCorrupt(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, store.Delete(ctx, "missing"))

	require.NoError(t, mr.Set(redisKeyPrefix+utils.HashToken("broken"), "not json"))
	_, err = store.Get(ctx, "broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRedisStore_ServerDown(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)
	mr.Close()

	_, err := store.Get(ctx, "sid")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound, "outages are not reported as unknown sessions")
	assert.Error(t, store.Save(ctx, &domain.Session{ID: "sid"}, time.Minute))
}

func TestNewRedisClient(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	rdb, err := NewRedisClient(ctx, mr.Addr(), "", 0)
	require.NoError(t, err)
	require.NoError(t, rdb.Close())

	addr := mr.Addr()
	mr.Close()
	_, err = NewRedisClient(ctx, addr, "", 0)
	assert.Error(t, err)
}
