package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-supa-client/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptyToken is returned when an empty token string is parsed.
var ErrEmptyToken = errors.New("empty token")

// ParseAccessTokenClaims decodes the claims of an access token issued by the
// auth server WITHOUT verifying its signature. The client never holds the
// signing secret; the claims are only used for local bookkeeping such as the
// expiry time. Anything security relevant is checked by the server.
//
// Returns an error if the token is not a well-formed JWT or its subject is
// present but not a UUID.
func ParseAccessTokenClaims(tokenString string) (models.AccessTokenClaims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return models.AccessTokenClaims{}, ErrEmptyToken
	}

	var claims models.AccessTokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &claims); err != nil {
		return models.AccessTokenClaims{}, fmt.Errorf("error parsing access token: %w", err)
	}

	if claims.Subject != "" {
		if !IsUUID(claims.Subject) {
			return models.AccessTokenClaims{}, fmt.Errorf("access token subject %q is not a UUID", claims.Subject)
		}
	}

	return claims, nil
}
