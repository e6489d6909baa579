package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-login-service/internal/logger"
	"github.com/MKhiriev/go-login-service/models"
)

// resetTokenRepository is the database-backed implementation of
// [ResetTokenRepository]. It manages rows in "password_reset_tokens".
type resetTokenRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewResetTokenRepository constructs a [ResetTokenRepository] backed by the
// provided database connection and logger.
func NewResetTokenRepository(db *DB, logger *logger.Logger) ResetTokenRepository {
	logger.Debug().Msg("creating reset token repository")
	return &resetTokenRepository{
		db:     db,
		logger: logger,
	}
}

// CreateToken persists a new reset token for the given user and returns the
// stored record with server-assigned fields (ID, CreatedAt).
func (r *resetTokenRepository) CreateToken(ctx context.Context, token models.PasswordResetToken) (models.PasswordResetToken, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createResetToken, token.Token, token.UserID, token.ExpiresAt)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*resetTokenRepository.CreateToken").Msg("error: insert failed")
		return models.PasswordResetToken{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := row.Scan(&token.ID, &token.Token, &token.UserID, &token.ExpiresAt, &token.Used, &token.CreatedAt); err != nil {
		log.Err(err).Str("func", "*resetTokenRepository.CreateToken").Msg("error: scanning error")
		return models.PasswordResetToken{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return token, nil
}

// FindActiveByToken looks up an unused token by its string value. Expired
// tokens are still returned; expiry is the service's decision so it can
// report "expired" distinctly from "invalid".
//
// Tokens that were already consumed do not match the query, so a replayed
// token is indistinguishable from one that never existed.
//
// When q is a transaction on PostgreSQL the matched row is locked with
// FOR UPDATE, serializing concurrent redeems of the same token.
func (r *resetTokenRepository) FindActiveByToken(ctx context.Context, q DBTX, token string) (models.PasswordResetToken, error) {
	log := logger.FromContext(ctx)

	var found models.PasswordResetToken
	row := q.QueryRowContext(ctx, findActiveResetToken+r.db.forUpdateSuffix(), token)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*resetTokenRepository.FindActiveByToken").Msg("error: query failed")
		return models.PasswordResetToken{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := row.Scan(&found.ID, &found.Token, &found.UserID, &found.ExpiresAt, &found.Used); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PasswordResetToken{}, ErrResetTokenNotFound
		}
		log.Err(err).Str("func", "*resetTokenRepository.FindActiveByToken").Msg("error: scanning error")
		return models.PasswordResetToken{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// MarkUsed consumes a reset token. The UPDATE is guarded by used = false,
// so a token that was consumed between lookup and update reports
// [ErrResetTokenNotFound] instead of silently succeeding twice.
func (r *resetTokenRepository) MarkUsed(ctx context.Context, q DBTX, tokenID int64) error {
	log := logger.FromContext(ctx)

	result, err := q.ExecContext(ctx, markResetTokenUsed, tokenID)
	if err != nil {
		log.Err(err).Str("func", "*resetTokenRepository.MarkUsed").Msg("error: update failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrResetTokenNotFound
	}

	return nil
}

// DeleteStale removes consumed and expired tokens in a single statement and
// returns the number of deleted rows. Used by the cleanup worker.
func (r *resetTokenRepository) DeleteStale(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteStaleQuery(now)
	if err != nil {
		log.Err(err).Str("func", "*resetTokenRepository.DeleteStale").Msg("error: building delete query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*resetTokenRepository.DeleteStale").Msg("error: delete failed")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return affected, nil
}
