// Package memory provides an in-memory implementation of the kv.Store
// interface using github.com/hashicorp/golang-lru/v2 with TTL support.
// It is intended for tests and single-process deployments.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/davrow/mcp-auth-go/kv"
	lru "github.com/hashicorp/golang-lru/v2"
)

// entry is a stored value plus its expiry metadata.
type entry struct {
	value     []byte
	createdAt time.Time
	expiresAt *time.Time // nil = no expiration
}

func (e *entry) expired() bool {
	return e.expiresAt != nil && time.Now().After(*e.expiresAt)
}

// Store implements the kv.Store interface in process memory.
type Store struct {
	mu    sync.RWMutex
	cache *lru.Cache[string, *entry]

	closeOnce sync.Once
	done      chan struct{}
}

// New creates a new in-memory store holding at most maxItems entries.
func New(maxItems int) (*Store, error) {
	cache, err := lru.New[string, *entry](maxItems)
	if err != nil {
		return nil, fmt.Errorf("failed to create LRU cache: %w", err)
	}

	s := &Store{
		cache: cache,
		done:  make(chan struct{}),
	}

	// Background sweep of expired entries so TTL'd keys don't pin
	// cache capacity between reads.
	go s.cleanupExpired()

	return s, nil
}

// Get retrieves the value at key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	e, ok := s.cache.Get(key)
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}

	if e.expired() {
		s.mu.Lock()
		s.cache.Remove(key)
		s.mu.Unlock()
		return nil, nil
	}

	// Copy so callers can't mutate the stored bytes.
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, nil
}

// Set stores value at key.
func (s *Store) Set(ctx context.Context, key string, value []byte, opts ...kv.Option) error {
	options := &kv.Options{}
	for _, opt := range opts {
		opt(options)
	}

	now := time.Now()
	e := &entry{
		value:     make([]byte, len(value)),
		createdAt: now,
	}
	copy(e.value, value)

	if options.TTL != nil {
		expiresAt := now.Add(*options.TTL)
		e.expiresAt = &expiresAt
	}

	s.mu.Lock()
	s.cache.Add(key, e)
	s.mu.Unlock()

	return nil
}

// Delete removes the value at key.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	s.cache.Remove(key)
	s.mu.Unlock()
	return nil
}

// Close stops the background cleanup and drops all entries.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		s.mu.Lock()
		s.cache.Purge()
		s.mu.Unlock()
	})
	return nil
}

// cleanupExpired periodically removes expired entries.
func (s *Store) cleanupExpired() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			for _, key := range s.cache.Keys() {
				if e, ok := s.cache.Peek(key); ok && e.expired() {
					s.cache.Remove(key)
				}
			}
			s.mu.Unlock()
		}
	}
}

// Compile-time interface check
var _ kv.Store = (*Store)(nil)
