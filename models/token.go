package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the claim set carried by every issued access token.
//
// It embeds [jwt.RegisteredClaims] for the standard claim set (sub, exp,
// iat, iss) and adds non-trusted convenience claims mirroring display
// attributes of the user. Authorisation decisions must rely on the subject
// only; Email and Name exist purely so that clients can render identity
// without an extra round-trip.
type AccessClaims struct {
	jwt.RegisteredClaims

	// Email mirrors the user's login identifier at issuance time.
	Email string `json:"email,omitempty"`

	// Name mirrors the user's display name at issuance time.
	Name string `json:"name,omitempty"`
}

// Token wraps a JWT access token with convenience accessors for
// authentication flows.
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be transmitted in a cookie.
//
// UserID is a cached, parsed copy of the "sub" claim converted to int64,
// populated during token construction or validation.
type Token struct {
	// Token is the underlying JWT token used for signing and claim
	// inspection. Excluded from JSON serialization because only the
	// compact string form is meaningful outside the server process.
	*jwt.Token `json:"-"`

	// AccessClaims is the decoded claim set of the token.
	AccessClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// UserID is the owner identifier extracted from the "sub" claim.
	UserID int64 `json:"-"`
}

// GetUserID extracts the user identifier from the token's "sub" claim,
// parses it as a base-10 int64, and returns the result.
//
// Returns an error if the subject claim is missing, empty, or cannot be
// converted to int64.
func (t *Token) GetUserID() (int64, error) {
	userIDString, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
