package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword wraps the given plaintext password with bcrypt at the
// default cost. The salt is generated per call, so identical plaintexts
// produce different stored hashes.
//
// bcrypt rejects inputs longer than 72 bytes; handlers validate password
// length before this call, so an error here is unexpected.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hash), nil
}

// CheckPassword verifies a plaintext candidate against a stored bcrypt hash.
//
// Any failure — mismatched password or malformed stored hash — returns
// false. The authentication path must not be able to distinguish the two
// cases, so no error is surfaced here.
func CheckPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
