package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a Store backed by Redis, for hosts whose sessions live
// outside the process (multiple web workers sharing one session backend).
// Keys are namespaced twice: by the configured prefix and by the session id
// the store is bound to, so concurrent end-user sessions never collide.
type RedisStore struct {
	client    redis.UniversalClient
	sessionID string
	prefix    string
	ttl       time.Duration
}

// ensure that RedisStore implements the Store interface
var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a Redis-backed Store bound to one end-user session.
// Supported options: WithKeyPrefix, WithTTL
func NewRedisStore(client redis.UniversalClient, sessionID string, opt ...Option) (*RedisStore, error) {
	const op = "store.NewRedisStore"
	if client == nil {
		return nil, fmt.Errorf("%s: redis client is nil", op)
	}
	if sessionID == "" {
		return nil, fmt.Errorf("%s: session id is empty", op)
	}
	opts := getOpts(opt...)
	return &RedisStore{
		client:    client,
		sessionID: sessionID,
		prefix:    opts.withKeyPrefix,
		ttl:       opts.withTTL,
	}, nil
}

func (s *RedisStore) key(k string) string {
	return s.prefix + s.sessionID + ":" + k
}

// Get returns the value for key, mapping redis.Nil to ErrNotFound.
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("store.RedisStore.Get: %w", err)
	}
	return v, nil
}

// Set stores the value, applying the configured TTL when one was provided.
func (s *RedisStore) Set(ctx context.Context, key string, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("store.RedisStore.Set: %w", err)
	}
	return nil
}

// Delete removes the key.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("store.RedisStore.Delete: %w", err)
	}
	return nil
}
