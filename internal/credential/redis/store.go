// Package redis persists the provider API key in Redis so every proxy
// replica reads the same credential.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/davidbz/quill/internal/domain"
	"github.com/davidbz/quill/internal/observability"
)

// Commands is the subset of the Redis client used by the store.
type Commands interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Store implements domain.CredentialStore on top of a single Redis key.
type Store struct {
	client Commands
	key    string
}

// NewStore creates a Redis-backed credential store.
func NewStore(client Commands, key string) (*Store, error) {
	if client == nil {
		return nil, errors.New("redis client cannot be nil")
	}
	if key == "" {
		return nil, errors.New("redis key cannot be empty")
	}

	return &Store{
		client: client,
		key:    key,
	}, nil
}

// APIKey returns the stored key, or "" when the Redis key does not exist.
func (s *Store) APIKey(ctx context.Context) (string, error) {
	value, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read credential: %w", err)
	}

	return domain.NormalizeAPIKey(value), nil
}

// SetAPIKey replaces the stored key. The key never expires.
func (s *Store) SetAPIKey(ctx context.Context, key string) error {
	if err := s.client.Set(ctx, s.key, domain.NormalizeAPIKey(key), 0).Err(); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}

	observability.FromContext(ctx).Info("credential updated", observability.String("redis_key", s.key))
	return nil
}

// ClearAPIKey deletes the Redis key.
func (s *Store) ClearAPIKey(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to clear credential: %w", err)
	}

	observability.FromContext(ctx).Info("credential cleared", observability.String("redis_key", s.key))
	return nil
}
