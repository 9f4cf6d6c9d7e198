package auth

import (
	"encoding/json"
	"log/slog"
)

// Secret holds sensitive byte material behind an explicit zeroing step.
// The zero-on-scrub contract is best-effort in a garbage-collected
// runtime (intermediate copies made by the decoder are out of reach), but
// the canonical buffer is overwritten the moment the caller is done with
// it, and the value redacts itself in every incidental rendering
// (fmt, JSON, slog).
type Secret struct {
	b []byte
}

// NewSecret wraps s in a Secret.
func NewSecret(s string) *Secret {
	return &Secret{b: []byte(s)}
}

// Reveal returns the secret material. The returned string is immutable;
// callers should keep its lifetime as short as possible.
func (s *Secret) Reveal() string {
	if s == nil {
		return ""
	}
	return string(s.b)
}

// Empty reports whether no secret material is held.
func (s *Secret) Empty() bool {
	return s == nil || len(s.b) == 0
}

// Zero overwrites the secret bytes. Safe to call more than once and on a
// nil receiver.
func (s *Secret) Zero() {
	if s == nil {
		return
	}
	for i := range s.b {
		s.b[i] = 0
	}
	s.b = s.b[:0]
}

func (s *Secret) String() string { return "[REDACTED]" }

// LogValue keeps secrets out of slog output.
func (s *Secret) LogValue() slog.Value { return slog.StringValue("[REDACTED]") }

// MarshalJSON renders a redaction marker, never the secret. Records
// containing secrets are decoded here, not re-encoded for storage.
func (s *Secret) MarshalJSON() ([]byte, error) {
	return []byte(`"[REDACTED]"`), nil
}

func (s *Secret) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	s.b = []byte(v)
	return nil
}

var _ slog.LogValuer = (*Secret)(nil)
