package auth

import (
	"strings"
	"time"
)

// SessionRecord is the session document stored by the external issuer,
// keyed by "mcp_session:<session_id>". This layer only reads it.
type SessionRecord struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	CreatedAt string `json:"created_at"`
	ExpiresAt string `json:"expires_at"`
}

// TokenRecord is a linked third-party credential stored by the external
// issuer, keyed by "linked_account:<user_id>:<provider>". This layer only
// reads it; issuing and refreshing tokens happens elsewhere.
type TokenRecord struct {
	UserID         string   `json:"user_id"`
	Provider       string   `json:"provider"`
	ProviderUserID string   `json:"provider_user_id"`
	Email          string   `json:"email"`
	DisplayName    string   `json:"display_name"`
	AccessToken    *Secret  `json:"access_token"`
	RefreshToken   *Secret  `json:"refresh_token,omitempty"`
	ExpiresAt      string   `json:"expires_at"` // RFC3339 timestamp string
	Scopes         []string `json:"scopes"`
	LinkedAt       string   `json:"linked_at"`
}

// Expired reports whether the access token is past its expiry.
// An expires_at that does not parse as RFC3339 counts as expired; treating
// unreadable expiry as valid would hand out a token of unknown lifetime.
func (t *TokenRecord) Expired() bool {
	return t.ExpiredAt(time.Now())
}

// ExpiredAt is Expired evaluated against an explicit instant.
func (t *TokenRecord) ExpiredAt(now time.Time) bool {
	expiresAt, err := time.Parse(time.RFC3339, t.ExpiresAt)
	if err != nil {
		return true
	}
	return !now.Before(expiresAt)
}

// HasScope reports whether any stored scope contains required as a
// substring. The loose match is intentional: it lets callers ask for
// "userinfo.email" without spelling out each provider's full scope URL.
func (t *TokenRecord) HasScope(required string) bool {
	for _, scope := range t.Scopes {
		if strings.Contains(scope, required) {
			return true
		}
	}
	return false
}

// Scrub overwrites the secret fields. Callers that load a record defer
// Scrub so zeroing runs on every exit path.
func (t *TokenRecord) Scrub() {
	t.AccessToken.Zero()
	t.RefreshToken.Zero()
}
