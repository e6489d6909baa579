package service

import (
	"github.com/MKhiriev/go-login-service/internal/config"
	"github.com/MKhiriev/go-login-service/internal/logger"
	"github.com/MKhiriev/go-login-service/internal/store"
)

type Services struct {
	AuthService          AuthService
	PasswordResetService PasswordResetService
}

func NewServices(storages store.Storages, cfg *config.StructuredConfig, notifier Notifier, logger *logger.Logger) (*Services, error) {
	authService, err := NewAuthService(storages.UserRepository, cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService: authService,
		PasswordResetService: NewPasswordResetService(
			storages.UserRepository,
			storages.ResetTokenRepository,
			storages.DB,
			notifier,
			cfg.App,
			logger,
		),
	}, nil
}
