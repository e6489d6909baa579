// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validTestConfig()
	require.NoError(t, cfg.validate())
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{
			name:    "missing DSN",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "unknown driver",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.Driver = "mysql" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "missing listen address",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:    "zero request timeout",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.RequestTimeout = 0 },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:    "missing token issuer",
			mutate:  func(cfg *StructuredConfig) { cfg.App.TokenIssuer = "" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "zero token duration",
			mutate:  func(cfg *StructuredConfig) { cfg.App.TokenDuration = 0 },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "zero reset token duration",
			mutate:  func(cfg *StructuredConfig) { cfg.App.ResetTokenDuration = 0 },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "sign key is not base64",
			mutate:  func(cfg *StructuredConfig) { cfg.App.TokenSignKey = "%%% nope %%%" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name: "sign key too short",
			mutate: func(cfg *StructuredConfig) {
				cfg.App.TokenSignKey = base64.StdEncoding.EncodeToString([]byte("short"))
			},
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name: "mail host without sender",
			mutate: func(cfg *StructuredConfig) {
				cfg.Mail.Host = "smtp.example.com"
				cfg.Mail.Port = 587
				cfg.Mail.From = ""
			},
			wantErr: ErrInvalidMailConfigs,
		},
		{
			name: "mail host without port",
			mutate: func(cfg *StructuredConfig) {
				cfg.Mail.Host = "smtp.example.com"
				cfg.Mail.Port = 0
				cfg.Mail.From = "noreply@example.com"
			},
			wantErr: ErrInvalidMailConfigs,
		},
		{
			name:    "negative cleanup interval",
			mutate:  func(cfg *StructuredConfig) { cfg.Workers.CleanupInterval = -time.Minute },
			wantErr: ErrInvalidWorkersConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_ZeroCleanupIntervalIsValid(t *testing.T) {
	// Zero is the documented "janitor off" setting, not a mistake.
	cfg := validTestConfig()
	cfg.Workers.CleanupInterval = 0
	require.NoError(t, cfg.validate())
}

func TestValidate_MailIsOptional(t *testing.T) {
	// No mail host configured at all: reset emails are simply undeliverable,
	// but startup must not require SMTP settings.
	cfg := validTestConfig()
	cfg.Mail = Mail{}
	require.NoError(t, cfg.validate())
}

func TestSignKeyBytes_RoundTrip(t *testing.T) {
	raw := []byte("0123456789abcdef0123456789abcdef")
	app := App{TokenSignKey: base64.StdEncoding.EncodeToString(raw)}

	got, err := app.SignKeyBytes()
	require.NoError(t, err)
	assert.Equal(t, raw, got)
}
