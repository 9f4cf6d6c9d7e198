// Package apikey implements authentication against a static in-memory
// API key table loaded once at startup.
package apikey

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/davrow/mcp-auth-go/auth"
)

// Provider authenticates credentials by verbatim lookup in a fixed
// key-to-user table. The table is copied at construction and never
// mutated, so the provider is safe for unsynchronized concurrent use.
type Provider struct {
	keys map[string]string
}

// New creates a Provider from a map of API key to user ID. The map is
// copied; later mutation of keys by the caller has no effect.
func New(keys map[string]string) *Provider {
	table := make(map[string]string, len(keys))
	for k, v := range keys {
		table[k] = v
	}
	return &Provider{keys: table}
}

// FromEnv creates a Provider from the API_KEYS environment variable,
// expected in "key1:user1,key2:user2" form. An unset variable yields an
// empty table that rejects every credential.
func FromEnv() *Provider {
	return New(ParsePairs(os.Getenv("API_KEYS")))
}

// ParsePairs parses a "key1:user1,key2:user2" string into a key table.
// Entries that are not exactly key:user are skipped.
func ParsePairs(s string) map[string]string {
	keys := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		parts := strings.Split(pair, ":")
		if len(parts) != 2 {
			continue
		}
		keys[parts[0]] = parts[1]
	}
	return keys
}

// Authenticate looks up the credential as an API key.
func (p *Provider) Authenticate(ctx context.Context, credential string) (*auth.Identity, error) {
	userID, ok := p.keys[credential]
	if !ok {
		return nil, fmt.Errorf("%w: invalid API key", auth.ErrInvalidCredential)
	}
	return &auth.Identity{
		UserID: userID,
		Metadata: map[string]string{
			auth.MetaAuthType: auth.AuthTypeAPIKey,
		},
	}, nil
}

// ValidateCredentialFormat rejects only empty credentials; API keys are
// otherwise opaque.
func (p *Provider) ValidateCredentialFormat(credential string) error {
	if credential == "" {
		return fmt.Errorf("%w: API key cannot be empty", auth.ErrInvalidFormat)
	}
	return nil
}

var _ auth.Provider = (*Provider)(nil)
