// Package auth provides the pluggable credential-authentication contract
// shared by every authentication strategy in this module. A Provider
// resolves an opaque client-supplied credential (an API key or a session
// identifier) into a verified Identity.
//
// The public surface intentionally stays small: a Provider validates a
// credential's shape without I/O (ValidateCredentialFormat) and resolves
// it (Authenticate). Callers hold a Provider and never branch on the
// concrete strategy behind it. Concrete strategies live in subpackages:
// apikey (static key table) and sessionauth (external session store).
// The Disabled provider in this package refuses every credential so that
// callers keep a uniform interface when authentication is turned off.
//
// # Errors
//
// Every failure maps into a closed taxonomy of sentinel errors, matched
// with errors.Is:
//
//   - ErrInvalidFormat: credential shape rejected before any I/O.
//   - ErrInvalidCredential: resolution failed (not found, expired, or
//     corrupt). Safe to surface as a generic "authentication failed".
//   - ErrStoreUnavailable: transient fault reaching the backing store.
//     Safe to retry with backoff at the caller; never retried here.
//   - ErrDisabled: the provider intentionally refuses all credentials.
//
// A failed authentication is a per-call result, never a panic.
//
// # Secrets
//
// Token material loaded from the store arrives wrapped in Secret values.
// Callers that load a TokenRecord defer its Scrub method so the secret
// bytes are overwritten on every exit path, not just the happy one.
package auth
