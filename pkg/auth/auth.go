package auth

import (
	"errors"
	"strings"
)

var (
	ErrEmptyAuthorization   = errors.New("authorization header is empty")
	ErrInvalidAuthorization = errors.New("invalid authorization header format, expected 'Bearer <token>'")
)

// ExtractBearerToken returns the token of a "Bearer <token>" header value.
// The scheme is matched case-insensitively.
func ExtractBearerToken(authHeader string) (string, error) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", ErrEmptyAuthorization
	}

	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", ErrInvalidAuthorization
	}

	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", ErrInvalidAuthorization
	}
	return token, nil
}
