// Package sessionauth resolves session identifiers and linked OAuth
// tokens out of an external key-value store.
//
// Two read operations make up the protocol: a session lookup that maps a
// UUIDv4 session ID to a user, and a linked-account lookup that maps
// (user, provider) to a stored OAuth token. The composite
// AuthenticateToken runs them back to back. Both records are owned by an
// external issuer; this package fetches fresh on every call and never
// caches, retries, or writes.
package sessionauth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/davrow/mcp-auth-go/auth"
	"github.com/davrow/mcp-auth-go/kv"
	"github.com/google/uuid"
)

// Default key prefixes written by the session issuer.
const (
	DefaultSessionKeyPrefix       = "mcp_session:"
	DefaultLinkedAccountKeyPrefix = "linked_account:"
)

// Config for the session authentication service.
type Config struct {
	// SessionKeyPrefix prefixes session lookups. Default: "mcp_session:".
	SessionKeyPrefix string
	// LinkedAccountKeyPrefix prefixes linked-account lookups.
	// Default: "linked_account:".
	LinkedAccountKeyPrefix string
}

// Service authenticates session credentials against a kv.Store. All state
// is read-only after construction; concurrent calls share the store's own
// connection multiplexing and need no locking here.
type Service struct {
	store         kv.Store
	sessionPrefix string
	linkedPrefix  string
	now           func() time.Time
}

// New creates a Service reading from store.
func New(store kv.Store, cfg Config) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("kv store is required")
	}
	sessionPrefix := cfg.SessionKeyPrefix
	if sessionPrefix == "" {
		sessionPrefix = DefaultSessionKeyPrefix
	}
	linkedPrefix := cfg.LinkedAccountKeyPrefix
	if linkedPrefix == "" {
		linkedPrefix = DefaultLinkedAccountKeyPrefix
	}
	return &Service{
		store:         store,
		sessionPrefix: sessionPrefix,
		linkedPrefix:  linkedPrefix,
		now:           time.Now,
	}, nil
}

// ValidateSessionFormat checks that sessionID is a canonical UUIDv4
// string (8-4-4-4-12 hex groups) without touching the store.
func ValidateSessionFormat(sessionID string) error {
	if !isUUIDv4(sessionID) {
		return fmt.Errorf("%w: invalid session ID format", auth.ErrInvalidFormat)
	}
	return nil
}

// isUUIDv4 accepts only the canonical 36-character hyphenated form, and
// only version 4 / RFC 4122 variant values. uuid.Parse alone would also
// admit braced, URN, and bare-hex encodings the issuer never produces.
func isUUIDv4(s string) bool {
	if len(s) != 36 {
		return false
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	return u.Version() == 4 && u.Variant() == uuid.RFC4122
}

// ResolveSession maps a session ID to the owning user ID.
//
// A missing key and an expired session are reported identically: the
// store evicts by TTL, so this layer cannot tell them apart, and the
// merged answer avoids confirming whether a session ever existed.
func (s *Service) ResolveSession(ctx context.Context, sessionID string) (string, error) {
	if !isUUIDv4(sessionID) {
		return "", fmt.Errorf("%w: invalid session ID format", auth.ErrInvalidCredential)
	}

	raw, err := s.store.Get(ctx, s.sessionPrefix+sessionID)
	if err != nil {
		return "", fmt.Errorf("%w: session lookup: %v", auth.ErrStoreUnavailable, err)
	}
	if raw == nil {
		return "", fmt.Errorf("%w: session not found or expired", auth.ErrInvalidCredential)
	}

	var rec auth.SessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		// The bytes were retrieved fine; bad payloads are a credential
		// problem, not a store problem.
		return "", fmt.Errorf("%w: invalid session data", auth.ErrInvalidCredential)
	}
	return rec.UserID, nil
}

// OAuthToken fetches the linked token for (userID, provider) and verifies
// it has not expired. The caller owns the returned record and must call
// Scrub when done with it.
func (s *Service) OAuthToken(ctx context.Context, userID, provider string) (*auth.TokenRecord, error) {
	raw, err := s.store.Get(ctx, s.linkedPrefix+userID+":"+provider)
	if err != nil {
		return nil, fmt.Errorf("%w: token lookup: %v", auth.ErrStoreUnavailable, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: OAuth token not found", auth.ErrInvalidCredential)
	}

	var rec auth.TokenRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("%w: invalid OAuth token data", auth.ErrInvalidCredential)
	}
	if rec.ExpiredAt(s.now()) {
		rec.Scrub()
		return nil, fmt.Errorf("%w: OAuth token expired", auth.ErrInvalidCredential)
	}
	return &rec, nil
}

// AuthenticateToken is the composite flow: session ID to user ID to the
// user's linked token for provider. It short-circuits on the first
// failure and performs no internal retries; re-reads are idempotent and
// cheap, so retry policy belongs to the caller.
func (s *Service) AuthenticateToken(ctx context.Context, sessionID, provider string) (*auth.TokenRecord, error) {
	userID, err := s.ResolveSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.OAuthToken(ctx, userID, provider)
}

// Authenticate implements auth.Provider for callers that only need an
// identity, not a provider-specific token. It performs session resolution
// only.
func (s *Service) Authenticate(ctx context.Context, credential string) (*auth.Identity, error) {
	userID, err := s.ResolveSession(ctx, credential)
	if err != nil {
		return nil, err
	}
	return &auth.Identity{
		UserID: userID,
		Metadata: map[string]string{
			auth.MetaAuthType:  auth.AuthTypeRedisSession,
			auth.MetaSessionID: credential,
		},
	}, nil
}

// ValidateCredentialFormat implements auth.Provider.
func (s *Service) ValidateCredentialFormat(credential string) error {
	return ValidateSessionFormat(credential)
}

var _ auth.Provider = (*Service)(nil)
