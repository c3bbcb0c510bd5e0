package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on a shared redis instance, for
// multi-instance deployments where sessions must survive instance
// affinity. Expiry and sweep are redis key TTLs; Refresh re-arms the TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps an existing client. The client's lifetime is
// owned by the caller.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return "admin_session:" + id
}

func (r *RedisStore) Create(ctx context.Context, email string) (string, error) {
	id, err := newSessionID()
	if err != nil {
		return "", err
	}
	if err := r.client.Set(ctx, sessionKey(id), email, r.ttl).Err(); err != nil {
		return "", fmt.Errorf("redis set failed: %w", err)
	}
	return id, nil
}

func (r *RedisStore) Validate(ctx context.Context, id string) (bool, error) {
	err := r.client.Get(ctx, sessionKey(id)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get failed: %w", err)
	}
	return true, nil
}

func (r *RedisStore) Refresh(ctx context.Context, id string) error {
	ok, err := r.client.Expire(ctx, sessionKey(id), r.ttl).Result()
	if err != nil {
		return fmt.Errorf("redis expire failed: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (r *RedisStore) Destroy(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

// Close is a no-op; redis evicts expired keys itself and the client is
// closed by its owner.
func (r *RedisStore) Close() error {
	return nil
}
