// Package session is a redis-backed store for learner sessions and the
// small cache keys the learner service uses (last practice date).
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	sessionPrefix = "session:"
	cachePrefix   = "cache:"

	// Sessions idle longer than this are dropped by redis.
	sessionExpiry = 30 * time.Minute
)

// Store wraps a redis client with the session and cache key conventions.
type Store struct {
	client *redis.Client
}

// NewStore connects to redis. The connection is verified eagerly so a bad
// address fails at startup, not on the first request.
func NewStore(addr, password string) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &Store{client: client}, nil
}

// Create stores a new session token for a learner and returns it.
func (s *Store) Create(ctx context.Context, learnerID string) (string, error) {
	token := uuid.New().String()
	if err := s.client.Set(ctx, sessionPrefix+token, learnerID, sessionExpiry).Err(); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return token, nil
}

// Resolve maps a session token to a learner ID. An unknown or expired token
// returns an empty string with no error.
func (s *Store) Resolve(ctx context.Context, token string) (string, error) {
	learnerID, err := s.client.Get(ctx, sessionPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve session: %w", err)
	}
	// Sliding expiry: any authenticated request keeps the session alive.
	s.client.Expire(ctx, sessionPrefix+token, sessionExpiry)
	return learnerID, nil
}

// Delete removes a session.
func (s *Store) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// CacheGet reads a cache value; an absent key returns an empty string.
func (s *Store) CacheGet(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, cachePrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read cache key %s: %w", key, err)
	}
	return val, nil
}

// CacheSet writes a cache value with a TTL.
func (s *Store) CacheSet(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, cachePrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}

// Close releases the redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}
