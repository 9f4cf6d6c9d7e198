// Package kv defines the key-value store contract consumed by the
// session-based authentication provider. Records under this contract are
// written by an external issuer and only read here, so values pass
// through drivers untouched (no envelope, no re-encoding).
package kv

import (
	"context"
	"time"
)

// Store is a flat key-value store with optional per-key TTL.
type Store interface {
	// Get retrieves the value at key.
	// Returns (nil, nil) if the key doesn't exist or has expired.
	// Returns an error only for storage system failures.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value at key, replacing any existing value.
	Set(ctx context.Context, key string, value []byte, opts ...Option) error

	// Delete removes the value at key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// Option configures store operations.
type Option func(*Options)

// Options contains configuration for store operations.
type Options struct {
	TTL *time.Duration // Optional: time-to-live for the value
}

// WithTTL sets a time-to-live for the stored value.
func WithTTL(ttl time.Duration) Option {
	return func(opts *Options) {
		opts.TTL = &ttl
	}
}
