package auth

import (
	"strings"
	"testing"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash := HashPassword("admin123")

	if !strings.Contains(hash, ":") {
		t.Fatalf("expected salt:hash format, got %q", hash)
	}
	if !VerifyPassword("admin123", hash) {
		t.Error("expected password to verify against its own hash")
	}
	if VerifyPassword("wrong", hash) {
		t.Error("expected wrong password to fail verification")
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	if HashPassword("same") == HashPassword("same") {
		t.Error("expected different salts to produce different hashes")
	}
}

func TestVerifyPassword_MalformedStored(t *testing.T) {
	for _, stored := range []string{"", "no-separator", ":", "salt:", ":hash", "salt:nothex!"} {
		if VerifyPassword("admin123", stored) {
			t.Errorf("expected malformed stored value %q to fail", stored)
		}
	}
}
