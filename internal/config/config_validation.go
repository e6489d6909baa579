// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/base64"
	"fmt"
	"time"
)

// minSignKeyLen is the minimum decoded signing key length in bytes.
// HMAC-SHA256 requires at least a 256-bit key.
const minSignKeyLen = 32

// defaultConfig returns the built-in fallback values merged in last,
// after env, flags and the JSON file.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:        "go-login-service",
			TokenDuration:      30 * time.Minute,
			ResetTokenDuration: 30 * time.Minute,
			BaseURL:            "http://localhost:8080",
		},
		Storage: Storage{
			DB: DB{Driver: "pgx"},
		},
		Server: Server{
			HTTPAddress:     ":8080",
			RequestTimeout:  30 * time.Second,
			AuthExemptPaths: []string{"/auth", "/css", "/js", "/images", "/"},
		},
		Mail: Mail{
			Port:     587,
			FromName: "Login Service",
			Timeout:  15 * time.Second,
		},
		// Workers carry no defaults: an unset CleanupInterval stays zero,
		// which keeps the janitor off. A default here would make the
		// documented zero-disables setting unreachable, because the merge
		// cannot tell an explicit zero from an unset field.
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}
	if cfg.Storage.DB.Driver != "pgx" && cfg.Storage.DB.Driver != "sqlite3" {
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 || cfg.App.ResetTokenDuration <= 0 {
		return ErrInvalidAppConfigs
	}

	key, err := base64.StdEncoding.DecodeString(cfg.App.TokenSignKey)
	if err != nil {
		return fmt.Errorf("%w: token sign key is not valid base64: %w", ErrInvalidAppConfigs, err)
	}
	if len(key) < minSignKeyLen {
		return fmt.Errorf("%w: token sign key is %d bytes, need at least %d", ErrInvalidAppConfigs, len(key), minSignKeyLen)
	}

	if cfg.Mail.Host != "" && (cfg.Mail.Port <= 0 || cfg.Mail.From == "") {
		return ErrInvalidMailConfigs
	}

	// Zero means the janitor is disabled; only negative intervals are
	// nonsense.
	if cfg.Workers.CleanupInterval < 0 {
		return fmt.Errorf("%w: cleanup interval must not be negative", ErrInvalidWorkersConfigs)
	}

	return nil
}
