// Package store implements the persistence layer of the login service on
// top of database/sql. PostgreSQL (pgx stdlib driver) is the production
// backend; SQLite is supported for local development and tests.
package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/MKhiriev/go-login-service/models"
)

// DBTX is the subset of database/sql used by the repositories.
// Both *sql.DB and *sql.Tx satisfy this interface, which lets a repository
// method run either standalone or inside a caller-owned transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxRunner runs a function inside a database transaction, committing on
// success and rolling back on error or panic.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// UserRepository persists user accounts and enforces email uniqueness.
type UserRepository interface {
	// CreateUser persists a new user and returns the stored record with
	// server-assigned fields. A duplicate email yields
	// ErrEmailAlreadyExists.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail retrieves a user by exact, case-sensitive email
	// match. Absence yields ErrNoUserWasFound.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID retrieves a user by identifier.
	// Absence yields ErrNoUserWasFound.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	// UpdatePassword replaces the stored password hash for the given user.
	// It runs on q so callers can place it inside a transaction.
	UpdatePassword(ctx context.Context, q DBTX, userID int64, passwordHash string) error
}

// ResetTokenRepository persists single-use password-reset tokens.
type ResetTokenRepository interface {
	// CreateToken persists a freshly issued reset token.
	CreateToken(ctx context.Context, token models.PasswordResetToken) (models.PasswordResetToken, error)

	// FindActiveByToken retrieves the token row matching the given token
	// string with used = false, locking the row for update when the
	// backend supports it. A token that does not exist and a token that
	// was already used are indistinguishable: both yield
	// ErrResetTokenNotFound.
	FindActiveByToken(ctx context.Context, q DBTX, token string) (models.PasswordResetToken, error)

	// MarkUsed flips used to true for the given token row. The update is
	// conditional on used = false so a lost race surfaces as
	// ErrResetTokenNotFound instead of silently overwriting.
	MarkUsed(ctx context.Context, q DBTX, tokenID int64) error

	// DeleteStale removes tokens that are used or expired relative to now
	// and returns the number of rows deleted.
	DeleteStale(ctx context.Context, now time.Time) (int64, error)
}

// Storages aggregates all repositories together with the shared database
// handle, mirroring how the rest of the application consumes the store.
type Storages struct {
	UserRepository       UserRepository
	ResetTokenRepository ResetTokenRepository
	DB                   *DB
}
