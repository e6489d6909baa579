// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when reading the
// access token cookie. Callers can match against them with [errors.Is].
var (
	// ErrNoAccessTokenCookie is returned when the incoming request carries
	// no access token cookie at all.
	ErrNoAccessTokenCookie = errors.New("no access token cookie")

	// ErrEmptyToken is returned when the access token cookie is present but
	// its value is an empty string.
	ErrEmptyToken = errors.New("empty token in access token cookie")
)
