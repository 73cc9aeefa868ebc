package utils

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("owner-42", "owner", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	subject, err := ExtractIDFromToken(token)
	if err != nil {
		t.Fatalf("ExtractIDFromToken: %v", err)
	}
	if subject != "owner-42" {
		t.Errorf("subject = %q, want owner-42", subject)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken("owner-42", "owner", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ExtractIDFromToken(token); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	if _, err := ExtractIDFromToken("not.a.token"); err == nil {
		t.Error("expected malformed token to be rejected")
	}
}
