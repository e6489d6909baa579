// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoHTTPServerConfigured is returned when the configuration yields no
// listen address to serve on.
var errNoHTTPServerConfigured = errors.New("no http server is configured")
