// Package redis provides a Redis-based implementation of the kv.Store
// interface using github.com/redis/go-redis/v9.
//
// Values are stored verbatim: the session and linked-account records this
// store serves are written by an external issuer as plain JSON, and this
// side must read exactly the bytes that were written.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/davrow/mcp-auth-go/kv"
	"github.com/redis/go-redis/v9"
)

// Config contains configuration options for the Redis store.
type Config struct {
	// Client is the Redis client instance.
	Client *redis.Client
}

// Store implements the kv.Store interface using Redis.
type Store struct {
	client *redis.Client
}

// New creates a new Redis-backed store.
func New(config Config) (*Store, error) {
	if config.Client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	return &Store{client: config.Client}, nil
}

// NewFromAddr dials addr and verifies connectivity before returning a store.
func NewFromAddr(ctx context.Context, addr string, db int) (*Store, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Store{client: client}, nil
}

// Get retrieves the value at key. Redis owns TTL eviction, so a key that
// has expired is indistinguishable from one that never existed.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Key doesn't exist
		}
		return nil, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return val, nil
}

// Set stores value at key. A zero TTL stores the value without expiry.
func (s *Store) Set(ctx context.Context, key string, value []byte, opts ...kv.Option) error {
	options := &kv.Options{}
	for _, opt := range opts {
		opt(options)
	}

	var ttl time.Duration
	if options.TTL != nil {
		ttl = *options.TTL
	}

	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

// Delete removes the value at key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying Redis client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Compile-time interface check
var _ kv.Store = (*Store)(nil)
