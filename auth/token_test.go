package auth

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestTokenRecordExpiry(t *testing.T) {
	cases := []struct {
		name      string
		expiresAt string
		expired   bool
	}{
		{"past", "2020-01-01T00:00:00Z", true},
		{"future", time.Now().Add(time.Hour).Format(time.RFC3339), false},
		{"far future", "2120-01-01T00:00:00Z", false},
		{"unparsable", "not-a-timestamp", true},
		{"empty", "", true},
		{"date only", "2120-01-01", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := TokenRecord{ExpiresAt: tc.expiresAt}
			if got := rec.Expired(); got != tc.expired {
				t.Errorf("Expired() = %v, want %v for expires_at %q", got, tc.expired, tc.expiresAt)
			}
		})
	}
}

func TestTokenRecordExpiredAtBoundary(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := TokenRecord{ExpiresAt: now.Format(time.RFC3339)}

	// now >= expires_at counts as expired.
	if !rec.ExpiredAt(now) {
		t.Error("token expiring exactly now should be expired")
	}
	if rec.ExpiredAt(now.Add(-time.Second)) {
		t.Error("token expiring in one second should not be expired")
	}
}

func TestTokenRecordHasScope(t *testing.T) {
	rec := TokenRecord{
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/calendar.readonly",
		},
	}

	if !rec.HasScope("userinfo.email") {
		t.Error("expected substring match on userinfo.email")
	}
	if !rec.HasScope("https://www.googleapis.com/auth/calendar.readonly") {
		t.Error("expected match on full scope URL")
	}
	if rec.HasScope("drive") {
		t.Error("unexpected match on absent scope")
	}

	empty := TokenRecord{}
	if empty.HasScope("anything") {
		t.Error("empty scope list must never match")
	}
}

func TestTokenRecordDecode(t *testing.T) {
	// Issuer-side JSON as it sits in the store.
	raw := `{
		"user_id": "u1",
		"provider": "google",
		"provider_user_id": "123",
		"email": "u1@example.com",
		"display_name": "User One",
		"access_token": "ya29.secret",
		"refresh_token": "1//refresh",
		"expires_at": "2120-01-01T00:00:00Z",
		"scopes": ["https://www.googleapis.com/auth/userinfo.email"],
		"linked_at": "2026-01-01T00:00:00Z"
	}`

	var rec TokenRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec.UserID != "u1" || rec.Provider != "google" {
		t.Errorf("unexpected identity fields: %+v", rec)
	}
	if got := rec.AccessToken.Reveal(); got != "ya29.secret" {
		t.Errorf("AccessToken.Reveal() = %q", got)
	}
	if got := rec.RefreshToken.Reveal(); got != "1//refresh" {
		t.Errorf("RefreshToken.Reveal() = %q", got)
	}

	// Re-encoding must redact, never echo secret material.
	out, err := json.Marshal(&rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(out), "ya29.secret") || strings.Contains(string(out), "1//refresh") {
		t.Fatalf("marshaled record leaked secret material: %s", out)
	}
}

func TestTokenRecordScrub(t *testing.T) {
	rec := TokenRecord{
		AccessToken:  NewSecret("access"),
		RefreshToken: NewSecret("refresh"),
	}
	rec.Scrub()

	if !rec.AccessToken.Empty() {
		t.Error("access token not scrubbed")
	}
	if !rec.RefreshToken.Empty() {
		t.Error("refresh token not scrubbed")
	}

	// Records without a refresh token scrub cleanly too.
	rec2 := TokenRecord{AccessToken: NewSecret("access")}
	rec2.Scrub()
	if !rec2.AccessToken.Empty() {
		t.Error("access token not scrubbed on record without refresh token")
	}
}
