package utils

import (
	"strings"
	"testing"
)

func TestHashPassword_ProducesVerifiableHash(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if hash == "s3cret-password" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("expected a bcrypt hash, got %q", hash)
	}
	if !CheckPassword("s3cret-password", hash) {
		t.Error("stored hash should verify against the original password")
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	first, err := HashPassword("same-input")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	second, err := HashPassword("same-input")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password should differ")
	}
}

func TestCheckPassword_Failures(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	tests := []struct {
		name      string
		plaintext string
		hash      string
	}{
		{"wrong password", "battery staple", hash},
		{"empty password", "", hash},
		{"malformed hash", "correct horse", "not-a-bcrypt-hash"},
		{"empty hash", "correct horse", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if CheckPassword(tt.plaintext, tt.hash) {
				t.Error("expected verification to fail")
			}
		})
	}
}
