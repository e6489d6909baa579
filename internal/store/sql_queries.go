package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
)

const (
	createUser = `INSERT INTO users (email, password_hash, name, enabled)
    VALUES ($1, $2, $3, $4)
    RETURNING user_id, email, password_hash, name, enabled, created_at;`

	findUserByEmail = `SELECT user_id, email, password_hash, name, enabled, created_at
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT user_id, email, password_hash, name, enabled, created_at
    FROM users
    WHERE user_id = $1;`

	updateUserPassword = `UPDATE users
    SET password_hash = $1
    WHERE user_id = $2;`

	createResetToken = `INSERT INTO password_reset_tokens (token, user_id, expires_at, used)
    VALUES ($1, $2, $3, false)
    RETURNING id, token, user_id, expires_at, used, created_at;`

	// The used = false filter makes "never existed" and "already used"
	// indistinguishable to the caller.
	findActiveResetToken = `SELECT id, token, user_id, expires_at, used
    FROM password_reset_tokens
    WHERE token = $1 AND used = false`

	markResetTokenUsed = `UPDATE password_reset_tokens
    SET used = true
    WHERE id = $1 AND used = false;`
)

// psql builds queries with PostgreSQL-style positional placeholders, which
// both supported drivers accept.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildDeleteStaleQuery builds the janitor's compound delete: every token
// that is either consumed or past its expiry is eligible for removal.
func buildDeleteStaleQuery(now time.Time) (string, []any, error) {
	return psql.
		Delete("password_reset_tokens").
		Where(sq.Or{
			sq.Eq{"used": true},
			sq.Lt{"expires_at": now},
		}).
		ToSql()
}
