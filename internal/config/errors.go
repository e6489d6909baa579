package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty DSN or unsupported driver).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates invalid HTTP server settings
	// (for example, missing listen address or zero request timeout).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, a missing or undersized token signing key).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidMailConfigs indicates incomplete SMTP settings when a mail
	// host is configured.
	ErrInvalidMailConfigs = errors.New("invalid mail configuration")
	// ErrInvalidWorkersConfigs indicates invalid background worker settings
	// (for example, a negative cleanup interval).
	ErrInvalidWorkersConfigs = errors.New("invalid workers configuration")
)
