package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRedisStore exercises the Redis-backed store against a live server.  Set
// REDIS_ADDR (for example "localhost:6379") to run it.
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	assert, require := assert.New(t), require.New(t)

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	s, err := NewRedisStore(client, "test-session", WithTTL(time.Minute))
	require.NoError(err)

	require.NoError(s.Set(ctx, KeyAccessToken, "AT1"))
	got, err := s.Get(ctx, KeyAccessToken)
	require.NoError(err)
	assert.Equal("AT1", got)

	// bound to a different session id, the same key is absent
	other, err := NewRedisStore(client, "other-session")
	require.NoError(err)
	_, err = other.Get(ctx, KeyAccessToken)
	assert.True(errors.Is(err, ErrNotFound))

	require.NoError(s.Delete(ctx, KeyAccessToken))
	_, err = s.Get(ctx, KeyAccessToken)
	assert.True(errors.Is(err, ErrNotFound))
}
