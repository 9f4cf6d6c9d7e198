package auth

import (
	"context"
	"errors"
)

// ErrInvalidFormat indicates a credential whose shape was rejected before
// any store round-trip.
var ErrInvalidFormat = errors.New("invalid credential format")

// ErrInvalidCredential indicates resolution failed: the credential is
// unknown, expired, or the stored record is corrupt. "Absent" and
// "expired" deliberately collapse into this one kind because the backing
// store evicts by TTL and the two are indistinguishable here.
var ErrInvalidCredential = errors.New("invalid credential")

// ErrStoreUnavailable indicates a connection or transport fault to the
// backing store. Callers may retry; this layer never does.
var ErrStoreUnavailable = errors.New("credential store unavailable")

// ErrDisabled indicates the provider refuses all credentials because
// authentication is turned off.
var ErrDisabled = errors.New("authentication is disabled")

// Metadata keys set by the built-in providers.
const (
	MetaAuthType  = "auth_type"
	MetaSessionID = "session_id"
)

// Values of the auth_type metadata key.
const (
	AuthTypeAPIKey       = "api_key"
	AuthTypeRedisSession = "redis_session"
)

// Identity is the resolved principal returned on successful
// authentication. It is produced fresh per call, never persisted by this
// layer, and must not be mutated after construction.
type Identity struct {
	// UserID is the unique identifier of the authenticated user.
	UserID string
	// Metadata carries provider-specific details about how the
	// credential resolved (see the Meta* keys).
	Metadata map[string]string
}

// Provider is a concrete authentication strategy.
// Implementations must be safe for concurrent use.
type Provider interface {
	// Authenticate resolves a raw credential into an Identity.
	// Failures are one of the sentinel errors in this package.
	Authenticate(ctx context.Context, credential string) (*Identity, error)

	// ValidateCredentialFormat checks the credential's shape without any
	// I/O, so callers can short-circuit a store round-trip for malformed
	// input. It must never reject a credential that Authenticate would
	// accept.
	ValidateCredentialFormat(credential string) error
}

// Disabled is a Provider that fails every authentication with
// ErrDisabled. It exists so callers depend on one uniform interface
// whether or not authentication is configured.
type Disabled struct{}

func (Disabled) Authenticate(ctx context.Context, credential string) (*Identity, error) {
	return nil, ErrDisabled
}

// ValidateCredentialFormat accepts any credential; the refusal happens in
// Authenticate so disabled auth reads as a resolution failure, not a
// malformed input.
func (Disabled) ValidateCredentialFormat(credential string) error { return nil }

var _ Provider = Disabled{}
