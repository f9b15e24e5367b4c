package auth

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	fbAuth "firebase.google.com/go/auth"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/overlingo-project/overlingo/pkg/utils"
)

type FirebaseAuthClient interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbAuth.Token, error)
}

type Authenticator struct {
	client FirebaseAuthClient
	// Email domains allowed to use the service. Empty allows every verified email.
	domains []string
}

func New(client FirebaseAuthClient, domains []string) *Authenticator {
	return &Authenticator{
		client: client,
		domains: utils.Map(domains, func(domain string) string {
			return strings.ToLower(strings.TrimSpace(domain))
		}),
	}
}

func (a *Authenticator) Verify(ctx context.Context, token string) (string, error) {
	decodedToken, err := a.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", status.Errorf(codes.Unauthenticated, "invalid token: %v", err)
	}
	rawEmail, ok := decodedToken.Claims["email"]
	if !ok {
		return "", fmt.Errorf("failed to verify the token: invalid email in claim")
	}

	email, ok := rawEmail.(string)
	if !ok {
		return "", fmt.Errorf("failed to verify the token: invalid email in claim")
	}

	address, err := mail.ParseAddress(email)
	if err != nil {
		return "", fmt.Errorf("failed to verify the token: invalid email format")
	}
	splitEmail := strings.Split(address.Address, "@")
	if len(splitEmail) != 2 {
		return "", fmt.Errorf("failed to verify the token: malformed email structure (expected single '@')")
	}
	domain := strings.ToLower(splitEmail[1])
	if len(a.domains) > 0 && !utils.Contains(a.domains, domain) {
		return "", fmt.Errorf("failed to verify the token: invalid email domain")
	}

	return token, nil
}
