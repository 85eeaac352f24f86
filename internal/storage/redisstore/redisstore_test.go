package redisstore

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"

	"github.com/polkiloo/areacheck/internal/config"
	domainErrors "github.com/polkiloo/areacheck/internal/domain/errors"
	"github.com/polkiloo/areacheck/internal/domain/model"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestNewClient(t *testing.T) {
	mr, _ := newTestRedis(t)
	ctx := context.Background()

	client, err := NewClient(ctx, "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	require.NoError(t, client.Close())

	_, err = NewClient(ctx, "")
	require.Error(t, err)

	_, err = NewClient(ctx, "not a url")
	require.Error(t, err)

	mr.Close()
	_, err = NewClient(ctx, "redis://"+mr.Addr()+"/0")
	require.Error(t, err)
}

func TestSessionStore(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewSessionStore(client)
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	session := model.Session{ID: "abc", UserID: 4, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, store.Create(ctx, session))
	assert.ErrorIs(t, store.Create(ctx, session), domainErrors.ErrAlreadyExists)
	assert.Equal(t, time.Hour, mr.TTL(sessionPrefix+"abc"))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.UserID)
	assert.True(t, got.ExpiresAt.Equal(session.ExpiresAt))

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)

	deleted, err := store.Delete(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.Delete(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestSessionStoreExpiry(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.Create(ctx, model.Session{ID: "short", UserID: 1, ExpiresAt: now.Add(time.Minute)}))
	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "short")
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)

	err = store.Create(ctx, model.Session{ID: "stale", UserID: 1, ExpiresAt: now.Add(-time.Minute)})
	assert.ErrorIs(t, err, domainErrors.ErrInvalidArgument)
	assert.False(t, mr.Exists(sessionPrefix+"stale"))
}

func TestSessionStoreCorruptValue(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewSessionStore(client)
	require.NoError(t, mr.Set(sessionPrefix+"bad", "{not json"))

	_, err := store.Get(context.Background(), "bad")
	require.Error(t, err)
	assert.False(t, errors.Is(err, domainErrors.ErrNotFound))
}

func TestLoginLimiter(t *testing.T) {
	mr, client := newTestRedis(t)
	limiter := NewLoginLimiter(client, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := limiter.Allow(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := limiter.Allow(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = limiter.Allow(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, time.Minute, mr.TTL(loginLimitPrefix+"alice"))
	mr.FastForward(time.Minute + time.Second)

	ok, err = limiter.Allow(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLoginLimiterFailsOpen(t *testing.T) {
	mr, client := newTestRedis(t)
	limiter := NewLoginLimiter(client, 1)
	mr.Close()

	ok, err := limiter.Allow(context.Background(), "alice")
	require.Error(t, err)
	assert.True(t, ok)
}

func TestIdempotencyStore(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewIdempotencyStore(client, time.Hour)
	ctx := context.Background()

	cached, err := store.Reserve(ctx, "1:key")
	require.NoError(t, err)
	assert.Nil(t, cached)

	_, err = store.Reserve(ctx, "1:key")
	assert.ErrorIs(t, err, domainErrors.ErrRequestInProgress)

	resp := model.CachedResponse{Status: 200, ContentType: "application/json", Body: []byte(`{"hit":true}`)}
	require.NoError(t, store.Save(ctx, "1:key", resp))
	assert.Equal(t, time.Hour, mr.TTL(idempotencyPrefix+"1:key"))

	cached, err = store.Reserve(ctx, "1:key")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, resp, *cached)

	cached, err = store.Reserve(ctx, "2:key")
	require.NoError(t, err)
	assert.Nil(t, cached)
	require.NoError(t, store.Release(ctx, "2:key"))

	cached, err = store.Reserve(ctx, "2:key")
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestIdempotencyStoreErrors(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewIdempotencyStore(client, 0)
	assert.Equal(t, 24*time.Hour, store.ttl)

	require.NoError(t, mr.Set(idempotencyPrefix+"bad", "garbage"))
	_, err := store.Reserve(context.Background(), "bad")
	require.Error(t, err)

	mr.Close()
	_, err = store.Reserve(context.Background(), "any")
	require.Error(t, err)
	assert.False(t, errors.Is(err, domainErrors.ErrRequestInProgress))
}

func TestModuleClient(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	client, err := newClient(clientParams{Ctx: context.Background(), Config: &config.Config{}, Logger: logger})
	require.NoError(t, err)
	assert.Nil(t, client)

	lc := fxtest.NewLifecycle(t)
	registerLifecycle(lc, nil)
	lc.RequireStart().RequireStop()

	mr, _ := newTestRedis(t)
	client, err = newClient(clientParams{Ctx: context.Background(), Config: &config.Config{RedisURL: "redis://" + mr.Addr()}, Logger: logger})
	require.NoError(t, err)
	require.NotNil(t, client)

	lc = fxtest.NewLifecycle(t)
	registerLifecycle(lc, client)
	lc.RequireStart().RequireStop()
	assert.Error(t, client.Ping(context.Background()).Err())
}
