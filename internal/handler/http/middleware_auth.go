// Package http implements the HTTP transport layer of the application.
// It provides middleware, route handlers, and request/response utilities
// for the login pages and the REST API. Authentication, logging and
// tracing concerns are all handled at this layer before requests are
// forwarded to the service layer.
package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-login-service/internal/logger"
	"github.com/MKhiriev/go-login-service/internal/utils"
	"github.com/MKhiriev/go-login-service/models"
)

// auth is an HTTP middleware that resolves the caller's identity from the
// access token cookie.
//
// On exempt paths (the login pages, static assets and the landing page)
// the cookie is not even read. Everywhere else the middleware extracts the
// token, validates it via [service.AuthService.ParseToken], loads the
// referenced account via [service.AuthService.GetUserByID], and binds a
// [models.Principal] built from the stored record into the request context
// under [utils.PrincipalCtxKey]. Loading the account on every request
// means a user deleted or disabled after token issuance is locked out
// immediately, not at token expiry.
//
// A missing or invalid token is NOT an error here, and neither is a token
// whose subject no longer resolves to an enabled account: the request
// continues without a principal, and route groups that need one are
// guarded by [Handler.requirePrincipal]. This keeps one authentication
// pass per request while letting public and protected routes share the
// router.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.isExemptPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		tokenString, err := getTokenFromCookie(r)
		if err != nil {
			log.Debug().Err(err).Msg("request without usable access token")
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Debug().Err(err).Msg("access token rejected")
			next.ServeHTTP(w, r)
			return
		}

		user, err := h.services.AuthService.GetUserByID(ctx, token.UserID)
		if err != nil {
			log.Debug().Err(err).Int64("user_id", token.UserID).Msg("token subject no longer resolves to a user")
			next.ServeHTTP(w, r)
			return
		}
		if !user.Enabled {
			log.Debug().Int64("user_id", user.UserID).Msg("token subject is a disabled account")
			next.ServeHTTP(w, r)
			return
		}

		principal := models.Principal{
			UserID:      user.UserID,
			Email:       user.Email,
			Name:        user.Name,
			Authorities: []string{models.RoleUser},
		}
		ctx = utils.WithPrincipal(ctx, principal)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requirePrincipal guards a route group that must only be reachable by
// authenticated users. API paths get a 401 with a JSON body; everything
// else is redirected to the login page.
func (h *Handler) requirePrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetPrincipalFromContext(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)
		log.Info().Str("path", r.URL.Path).Msg("unauthenticated request to protected path")

		if strings.HasPrefix(r.URL.Path, "/api/") {
			utils.WriteJSON(w, map[string]string{"error": http.StatusText(http.StatusUnauthorized)}, http.StatusUnauthorized)
			return
		}
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
	})
}

// isExemptPath reports whether path skips token resolution entirely.
// Every configured entry is a prefix except "/", which matches only the
// landing page itself.
func (h *Handler) isExemptPath(path string) bool {
	for _, exempt := range h.serverCfg.AuthExemptPaths {
		if exempt == "/" {
			if path == "/" {
				return true
			}
			continue
		}
		if strings.HasPrefix(path, exempt) {
			return true
		}
	}
	return false
}

// getTokenFromCookie extracts the signed token string from the access
// token cookie.
//
// It returns the following sentinel errors:
//   - [ErrNoAccessTokenCookie] if the cookie is absent.
//   - [ErrEmptyToken] if the cookie exists but its value is empty.
func getTokenFromCookie(r *http.Request) (string, error) {
	cookie, err := r.Cookie(accessTokenCookie)
	if err != nil {
		return "", ErrNoAccessTokenCookie
	}

	if cookie.Value == "" {
		return "", ErrEmptyToken
	}

	return cookie.Value, nil
}
