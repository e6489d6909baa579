package workers

import (
	"context"

	"github.com/MKhiriev/go-login-service/internal/config"
	"github.com/MKhiriev/go-login-service/internal/logger"
	"github.com/MKhiriev/go-login-service/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles the application's background workers. They start
// when Run is called and stop when ctx is cancelled.
//
// Workers whose configuration disables them are not registered at all: a
// non-positive cleanup interval means no token janitor.
func NewWorkers(ctx context.Context, storages store.Storages, cfg config.Workers, logger *logger.Logger) *Workers {
	var registered []Worker

	if cfg.CleanupInterval > 0 {
		registered = append(registered, NewTokenJanitor(ctx, storages.ResetTokenRepository, cfg.CleanupInterval, logger))
	} else {
		logger.Info().Msg("reset token janitor is disabled")
	}

	return &Workers{workers: registered}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
