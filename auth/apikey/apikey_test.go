package apikey

import (
	"context"
	"errors"
	"testing"

	"github.com/davrow/mcp-auth-go/auth"
)

func TestAuthenticate(t *testing.T) {
	p := New(map[string]string{
		"test-key-123":  "user123",
		"admin-key-456": "admin456",
	})
	ctx := context.Background()

	t.Run("ValidKey", func(t *testing.T) {
		id, err := p.Authenticate(ctx, "test-key-123")
		if err != nil {
			t.Fatalf("Authenticate: %v", err)
		}
		if id.UserID != "user123" {
			t.Errorf("UserID = %q, want user123", id.UserID)
		}
		if got := id.Metadata[auth.MetaAuthType]; got != auth.AuthTypeAPIKey {
			t.Errorf("auth_type = %q, want %q", got, auth.AuthTypeAPIKey)
		}
	})

	t.Run("InvalidKey", func(t *testing.T) {
		id, err := p.Authenticate(ctx, "invalid-key")
		if !errors.Is(err, auth.ErrInvalidCredential) {
			t.Fatalf("err = %v, want ErrInvalidCredential", err)
		}
		if id != nil {
			t.Fatalf("unexpected identity %+v", id)
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		// Same table, same key: same result on every call.
		for i := 0; i < 3; i++ {
			id, err := p.Authenticate(ctx, "admin-key-456")
			if err != nil || id.UserID != "admin456" {
				t.Fatalf("call %d: id=%+v err=%v", i, id, err)
			}
		}
	})
}

func TestValidateCredentialFormat(t *testing.T) {
	// Format checks don't depend on table contents.
	p := New(nil)

	if err := p.ValidateCredentialFormat("valid-key"); err != nil {
		t.Errorf("non-empty key rejected: %v", err)
	}
	if err := p.ValidateCredentialFormat(""); !errors.Is(err, auth.ErrInvalidFormat) {
		t.Errorf("empty key: err = %v, want ErrInvalidFormat", err)
	}
}

func TestParsePairs(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want map[string]string
	}{
		{"two pairs", "k1:u1,k2:u2", map[string]string{"k1": "u1", "k2": "u2"}},
		{"single pair", "key:user", map[string]string{"key": "user"}},
		{"empty", "", map[string]string{}},
		{"missing separator", "justakey", map[string]string{}},
		{"too many separators", "a:b:c", map[string]string{}},
		{"mixed", "good:pair,bad,also:good", map[string]string{"good": "pair", "also": "good"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParsePairs(tc.in)
			if len(got) != len(tc.want) {
				t.Fatalf("ParsePairs(%q) = %v, want %v", tc.in, got, tc.want)
			}
			for k, v := range tc.want {
				if got[k] != v {
					t.Errorf("ParsePairs(%q)[%q] = %q, want %q", tc.in, k, got[k], v)
				}
			}
		})
	}
}

func TestTableIsCopied(t *testing.T) {
	src := map[string]string{"k1": "u1"}
	p := New(src)

	src["k1"] = "attacker"
	src["k2"] = "u2"

	id, err := p.Authenticate(context.Background(), "k1")
	if err != nil || id.UserID != "u1" {
		t.Fatalf("table mutated through source map: id=%+v err=%v", id, err)
	}
	if _, err := p.Authenticate(context.Background(), "k2"); !errors.Is(err, auth.ErrInvalidCredential) {
		t.Fatalf("key added through source map was honored: %v", err)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("API_KEYS", "k1:u1,k2:u2")
	p := FromEnv()

	id, err := p.Authenticate(context.Background(), "k2")
	if err != nil || id.UserID != "u2" {
		t.Fatalf("id=%+v err=%v", id, err)
	}
}
