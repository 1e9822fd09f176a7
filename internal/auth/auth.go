// Package auth verifies the bearer credentials presented to the recipe API.
// Verification is delegated to a token verifier; the API only cares about the
// binary outcome.
package auth

import (
	"context"
	"errors"
	"strings"
)

// ErrMissingHeader is returned when no Authorization header was presented at
// all, as opposed to a present-but-invalid credential.
var ErrMissingHeader = errors.New("Missing authorization header")

// Claims is the identity attached to a verified token.
type Claims struct {
	UserID string
	Email  string
}

// TokenVerifier checks a bearer token with the identity provider. A nil error
// means the caller is authenticated.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingHeader
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid authorization header format")
	}
	return parts[1], nil
}
