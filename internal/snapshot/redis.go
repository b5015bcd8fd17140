package snapshot

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// redisCommands is the slice of the redis client the store relies on.
type redisCommands interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Ping(ctx context.Context) error
}

// RedisStore persists snapshots as JSON blobs in Redis, one key per shopper
// session, optionally expiring idle sessions via TTL.
type RedisStore struct {
	client redisCommands
	ttl    time.Duration
}

// NewRedisStore constructs a snapshot store backed by the provided redis client.
func NewRedisStore(client redisCommands, ttl time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

// Read loads the payload stored at key.
func (s *RedisStore) Read(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, key)
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(value), true, nil
}

// Write overwrites the payload stored at key, refreshing the TTL when one is
// configured.
func (s *RedisStore) Write(ctx context.Context, key string, payload []byte) error {
	return s.client.Set(ctx, key, string(payload), s.ttl)
}

// Ping verifies the connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}
