package models

import "time"

// PasswordResetToken is a single-use credential for the password reset
// flow. The token string is random, unguessable, and consumed on first
// successful redemption.
type PasswordResetToken struct {
	// ID is the internal unique identifier of the token row.
	// It is assigned by the database at creation time.
	ID int64 `json:"-"`

	// Token is the random string delivered to the user in the reset link.
	// It is the only value the user ever presents back.
	Token string `json:"-"`

	// UserID identifies the account whose password this token may reset.
	UserID int64 `json:"-"`

	// ExpiresAt is the instant after which the token may no longer be
	// redeemed. Expiry is checked against the wall clock at redemption
	// time, not by a background process.
	ExpiresAt time.Time `json:"expires_at"`

	// Used marks a consumed token. A used token behaves exactly like a
	// token that never existed.
	Used bool `json:"-"`

	// CreatedAt is the timestamp when the token was issued.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the PasswordResetToken model.
func (t PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}

// Expired reports whether the token is past its expiry at the given
// instant.
func (t PasswordResetToken) Expired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}
