package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-login-service/internal/logger"
	"github.com/MKhiriev/go-login-service/internal/store"
)

// TokenJanitor periodically deletes consumed and expired password reset
// tokens. Token validity never depends on this worker; redemption filters
// on the used flag and the expiry timestamp itself, so the janitor only
// keeps the table from growing without bound.
type TokenJanitor struct {
	ctx      context.Context
	tokens   store.ResetTokenRepository
	interval time.Duration

	// now is the clock passed to DeleteStale. Overridable in tests.
	now func() time.Time

	logger *logger.Logger
}

// NewTokenJanitor constructs a TokenJanitor that sweeps every interval
// until ctx is cancelled.
func NewTokenJanitor(ctx context.Context, tokens store.ResetTokenRepository, interval time.Duration, logger *logger.Logger) *TokenJanitor {
	return &TokenJanitor{
		ctx:      ctx,
		tokens:   tokens,
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
}

// Run starts the sweep loop in its own goroutine and returns immediately.
// A non-positive interval disables the janitor: Run logs and returns
// without starting the loop, since time.NewTicker panics on such values.
func (j *TokenJanitor) Run() {
	if j.interval <= 0 {
		j.logger.Info().Dur("interval", j.interval).Msg("reset token janitor is disabled")
		return
	}

	j.logger.Info().Dur("interval", j.interval).Msg("reset token janitor started")

	go func() {
		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		for {
			select {
			case <-j.ctx.Done():
				j.logger.Info().Msg("reset token janitor stopped")
				return
			case <-ticker.C:
				j.sweep()
			}
		}
	}()
}

// sweep runs one cleanup pass. Failures are logged and the loop carries
// on; a missed sweep is made up by the next tick.
func (j *TokenJanitor) sweep() {
	deleted, err := j.tokens.DeleteStale(j.ctx, j.now())
	if err != nil {
		j.logger.Err(err).Msg("reset token cleanup failed")
		return
	}

	if deleted > 0 {
		j.logger.Info().Int64("deleted", deleted).Msg("stale reset tokens removed")
	}
}
