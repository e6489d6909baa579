package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MKhiriev/go-login-service/models"
	"github.com/golang-jwt/jwt/v5"
)

// Sentinel errors returned by the JWT helpers. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrNoTokenProvided is returned by ValidateAndParseJWTToken when the
	// token string is empty. This is a caller programming error, distinct
	// from a cryptographically invalid token.
	ErrNoTokenProvided = errors.New("no token provided")

	// ErrInvalidTokenParams is returned by GenerateJWTToken when issuer,
	// duration or sign key are missing.
	ErrInvalidTokenParams = errors.New("invalid params for generating JWT token")
)

// GenerateJWTToken creates a signed HMAC-SHA256 JWT access token for the
// given user.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user ID encoded as a base-10 string
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//   - email, name:     non-trusted display attributes of the user
//
// All parameters are required. Returns [ErrInvalidTokenParams] if issuer is
// empty, tokenDuration is zero, or signKey is empty.
func GenerateJWTToken(issuer string, user models.User, tokenDuration time.Duration, signKey []byte) (models.Token, error) {
	if issuer == "" || tokenDuration == 0 || len(signKey) == 0 {
		return models.Token{}, ErrInvalidTokenParams
	}

	now := time.Now()
	claims := models.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(user.UserID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email: user.Email,
		Name:  user.Name,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(signKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{
		Token:        token,
		AccessClaims: claims,
		SignedString: tokenString,
		UserID:       user.UserID,
	}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts
// its claims.
//
// Validation includes:
//   - Signature verification using the provided sign key (HS256 only)
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Expiration (exp) claim check with no leeway — a token expired by one
//     second is rejected
//   - Subject (sub) claim presence and conversion to an int64 user ID
//
// Returns [ErrNoTokenProvided] for an empty input string. Any other failure
// (bad signature, malformed structure, wrong issuer, expired) is returned as
// the underlying jwt error; callers are expected to normalise it so the
// rejection reason never reaches a client.
func ValidateAndParseJWTToken(tokenString string, signKey []byte, tokenIssuer string) (models.Token, error) {
	if tokenString == "" {
		return models.Token{}, ErrNoTokenProvided
	}

	claims := &models.AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return signKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	userIDStr, err := token.Claims.GetSubject()
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if userIDStr == "" {
		return models.Token{}, errors.New("empty subject error")
	}

	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during converting subject to user ID: %w", err)
	}

	return models.Token{
		Token:        token,
		AccessClaims: *claims,
		SignedString: tokenString,
		UserID:       userID,
	}, nil
}
