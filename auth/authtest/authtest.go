// Package authtest provides test doubles and store seeding helpers for
// code that consumes the auth.Provider contract.
package authtest

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/davrow/mcp-auth-go/auth"
	"github.com/davrow/mcp-auth-go/auth/sessionauth"
	"github.com/davrow/mcp-auth-go/kv"
)

// StaticProvider is an auth.Provider backed by a fixed credential map.
// Used for testing callers without a real key table or session store.
type StaticProvider struct {
	// Users maps credential to the user ID it resolves to.
	Users map[string]string
	// FormatErr, when set, is returned by ValidateCredentialFormat.
	FormatErr error
	// AuthType is set as the auth_type metadata value. Defaults to "static".
	AuthType string
}

func (p *StaticProvider) Authenticate(ctx context.Context, credential string) (*auth.Identity, error) {
	userID, ok := p.Users[credential]
	if !ok {
		return nil, fmt.Errorf("%w: unknown test credential", auth.ErrInvalidCredential)
	}
	authType := p.AuthType
	if authType == "" {
		authType = "static"
	}
	return &auth.Identity{
		UserID:   userID,
		Metadata: map[string]string{auth.MetaAuthType: authType},
	}, nil
}

func (p *StaticProvider) ValidateCredentialFormat(credential string) error {
	return p.FormatErr
}

var _ auth.Provider = (*StaticProvider)(nil)

// TokenSeed mirrors the issuer-side JSON of a linked-account record.
// Secrets are plain strings here because the seed plays the role of the
// external issuer, which writes them in the clear.
type TokenSeed struct {
	UserID         string   `json:"user_id"`
	Provider       string   `json:"provider"`
	ProviderUserID string   `json:"provider_user_id"`
	Email          string   `json:"email"`
	DisplayName    string   `json:"display_name"`
	AccessToken    string   `json:"access_token"`
	RefreshToken   string   `json:"refresh_token,omitempty"`
	ExpiresAt      string   `json:"expires_at"`
	Scopes         []string `json:"scopes"`
	LinkedAt       string   `json:"linked_at"`
}

// SeedSession writes a session record for sessionID owned by userID under
// the default session key prefix.
func SeedSession(tb testing.TB, store kv.Store, sessionID, userID string) {
	tb.Helper()
	now := time.Now().UTC()
	rec := auth.SessionRecord{
		SessionID: sessionID,
		UserID:    userID,
		CreatedAt: now.Format(time.RFC3339),
		ExpiresAt: now.Add(time.Hour).Format(time.RFC3339),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		tb.Fatalf("marshal session record: %v", err)
	}
	if err := store.Set(context.Background(), sessionauth.DefaultSessionKeyPrefix+sessionID, data); err != nil {
		tb.Fatalf("seed session: %v", err)
	}
}

// SeedToken writes a linked-account record under the default
// linked-account key prefix. Zero-valued fields get usable defaults; an
// empty ExpiresAt becomes one hour from now.
func SeedToken(tb testing.TB, store kv.Store, seed TokenSeed) {
	tb.Helper()
	if seed.Provider == "" {
		seed.Provider = "google"
	}
	if seed.AccessToken == "" {
		seed.AccessToken = "test-access-token"
	}
	if seed.ExpiresAt == "" {
		seed.ExpiresAt = time.Now().UTC().Add(time.Hour).Format(time.RFC3339)
	}
	if seed.LinkedAt == "" {
		seed.LinkedAt = time.Now().UTC().Format(time.RFC3339)
	}
	data, err := json.Marshal(seed)
	if err != nil {
		tb.Fatalf("marshal token seed: %v", err)
	}
	key := sessionauth.DefaultLinkedAccountKeyPrefix + seed.UserID + ":" + seed.Provider
	if err := store.Set(context.Background(), key, data); err != nil {
		tb.Fatalf("seed token: %v", err)
	}
}
