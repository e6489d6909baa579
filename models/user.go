package models

import "time"

// User represents an account entity used for authentication.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is assigned by the database at creation time and never changes.
	UserID int64 `json:"-"`

	// Email is the unique login identifier of the user.
	// Lookups are case-sensitive exact matches.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This value MUST be a hash, never plaintext.
	// It is never exposed via JSON.
	PasswordHash string `json:"-"`

	// Name is the display name of the user.
	// It is non-sensitive and may be shown in UI.
	Name string `json:"name"`

	// Enabled indicates whether the account may authenticate.
	// New accounts are enabled by default; the flag is flipped only by
	// administrative flows.
	Enabled bool `json:"enabled"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
