package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-login-service/internal/config"
	"github.com/MKhiriev/go-login-service/internal/logger"
	"github.com/MKhiriev/go-login-service/internal/store"
	"github.com/MKhiriev/go-login-service/internal/utils"
	"github.com/MKhiriev/go-login-service/models"

	"github.com/google/uuid"
)

// passwordResetService is the concrete implementation of PasswordResetService.
// It issues single-use reset tokens, delivers them through a Notifier, and
// redeems them inside a database transaction.
type passwordResetService struct {
	userRepository  store.UserRepository
	tokenRepository store.ResetTokenRepository

	// txRunner provides the transaction boundary for token redemption, so
	// the password update and the token consumption commit or roll back as
	// one unit.
	txRunner store.TxRunner

	// notifier delivers the reset email. A nil notifier is not allowed.
	notifier Notifier

	// resetTokenDuration controls how long an issued reset token remains
	// redeemable.
	resetTokenDuration time.Duration

	// now is the clock used for expiry decisions. Overridable in tests.
	now func() time.Time

	logger *logger.Logger
}

// NewPasswordResetService constructs a PasswordResetService wired to the given
// repositories, transaction runner and notifier.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewPasswordResetService(
	userRepository store.UserRepository,
	tokenRepository store.ResetTokenRepository,
	txRunner store.TxRunner,
	notifier Notifier,
	cfg config.App,
	logger *logger.Logger,
) PasswordResetService {
	return &passwordResetService{
		userRepository:     userRepository,
		tokenRepository:    tokenRepository,
		txRunner:           txRunner,
		notifier:           notifier,
		resetTokenDuration: cfg.ResetTokenDuration,
		now:                time.Now,
		logger:             logger,
	}
}

// Request starts a password reset for the account registered under email.
//
// If no account matches, Request returns nil without writing anything or
// sending any mail, so callers cannot use it to probe which emails are
// registered. If an account matches, a fresh random token is persisted with
// expiry now+TTL and handed to the notifier.
//
// Repeated requests issue independent tokens; earlier tokens stay valid
// until redeemed or expired.
//
// Returns:
//   - ErrInvalidDataProvided if email is empty.
//   - nil if the email is unknown.
//   - A wrapped storage or notifier error otherwise.
func (p *passwordResetService) Request(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	if email == "" {
		log.Error().Msg("invalid reset request data provided")
		return ErrInvalidDataProvided
	}

	user, err := p.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Info().Str("email", email).Msg("reset requested for unknown email")
			return nil
		}
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return fmt.Errorf("user search by email failed: %w", err)
	}

	token, err := p.tokenRepository.CreateToken(ctx, models.PasswordResetToken{
		Token:     uuid.NewString(),
		UserID:    user.UserID,
		ExpiresAt: p.now().Add(p.resetTokenDuration),
	})
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("reset token creation ended with error")
		return fmt.Errorf("reset token creation ended with error: %w", err)
	}

	if err := p.notifier.SendResetEmail(ctx, user.Email, token.Token); err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("sending reset email failed")
		return fmt.Errorf("sending reset email failed: %w", err)
	}

	log.Info().Int64("user_id", user.UserID).Time("expires_at", token.ExpiresAt).Msg("reset token issued")
	return nil
}

// Reset redeems a reset token and replaces the account password.
//
// The whole redemption runs in one database transaction: the token row is
// looked up (and row-locked on backends that support it), checked for
// expiry, then the user's password hash and the token's used flag are
// updated together. Any failure rolls the transaction back, leaving both
// the token and the password untouched.
//
// Concurrent redeems of the same token are serialized by the row lock;
// exactly one succeeds and the rest observe a consumed token.
//
// Returns:
//   - ErrInvalidDataProvided if token or newPassword is empty.
//   - ErrResetTokenInvalid if no unused token matches. A token that never
//     existed and one already redeemed are indistinguishable.
//   - ErrResetTokenExpired if the token exists but is past its expiry.
//   - A wrapped storage error otherwise.
func (p *passwordResetService) Reset(ctx context.Context, token, newPassword string) error {
	log := logger.FromContext(ctx)

	if token == "" || newPassword == "" {
		log.Error().Msg("invalid reset data provided")
		return ErrInvalidDataProvided
	}

	err := p.txRunner.WithinTx(ctx, func(ctx context.Context, tx store.DBTX) error {
		found, err := p.tokenRepository.FindActiveByToken(ctx, tx, token)
		if err != nil {
			if errors.Is(err, store.ErrResetTokenNotFound) {
				return ErrResetTokenInvalid
			}
			return fmt.Errorf("reset token lookup failed: %w", err)
		}

		if found.Expired(p.now()) {
			log.Info().Int64("token_id", found.ID).Time("expires_at", found.ExpiresAt).Msg("expired reset token presented")
			return ErrResetTokenExpired
		}

		passwordHash, err := utils.HashPassword(newPassword)
		if err != nil {
			return fmt.Errorf("password hashing failed: %w", err)
		}

		if err := p.userRepository.UpdatePassword(ctx, tx, found.UserID, passwordHash); err != nil {
			return fmt.Errorf("password update failed: %w", err)
		}

		if err := p.tokenRepository.MarkUsed(ctx, tx, found.ID); err != nil {
			if errors.Is(err, store.ErrResetTokenNotFound) {
				return ErrResetTokenInvalid
			}
			return fmt.Errorf("consuming reset token failed: %w", err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrResetTokenInvalid) || errors.Is(err, ErrResetTokenExpired) {
			return err
		}
		log.Err(err).Msg("password reset transaction failed")
		return err
	}

	log.Info().Msg("password reset completed")
	return nil
}
