package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestIssueAndVerifyToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Issue(42, 0)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if parts := strings.Split(token, "."); len(parts) != 3 {
		t.Fatalf("expected header.claims.signature token, got %d segments", len(parts))
	}

	userID, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if userID != 42 {
		t.Fatalf("subject = %d, want 42", userID)
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	other := NewTokenIssuer("another-secret", time.Hour)

	token, err := issuer.Issue(1, 0)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if _, err := other.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerifyTokenGarbage(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	for _, tok := range []string{"", "garbage", "a.b.c", "eyJhbGciOiJIUzI1NiJ9.e30."} {
		if _, err := issuer.Verify(tok); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("Verify(%q): expected ErrTokenInvalid, got %v", tok, err)
		}
	}
}

// A 1-second token verified after its lifetime must report expiry, never
// invalidity; the two failures carry different remediation semantics.
func TestVerifyTokenExpired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Issue(7, time.Second)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if _, err := issuer.Verify(token); err != nil {
		t.Fatalf("token expired prematurely: %v", err)
	}

	time.Sleep(1100 * time.Millisecond)

	_, err = issuer.Verify(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
	if errors.Is(err, ErrTokenInvalid) {
		t.Fatal("expired token reported as invalid")
	}
}

func TestTokenIssuerDefaultTTL(t *testing.T) {
	if ttl := NewTokenIssuer("s", 0).DefaultTTL(); ttl != time.Hour {
		t.Fatalf("zero default TTL = %v, want 1h", ttl)
	}
	if ttl := NewTokenIssuer("s", 30*time.Second).DefaultTTL(); ttl != 30*time.Second {
		t.Fatalf("default TTL = %v, want 30s", ttl)
	}
}
