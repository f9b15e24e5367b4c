package auth

import (
	"context"
)

type Auth interface {
	// Verify returns the token when it is valid and its email domain is allowed.
	Verify(ctx context.Context, token string) (string, error)
}
