package auth

import (
	"context"
	"slices"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/overlingo-project/overlingo/pkg/auth"
)

// UnaryInterceptor requires a verified bearer token on every method except
// publicMethods. E.g., the sign-in method, which issues the token.
func UnaryInterceptor(authClient Auth, publicMethods ...string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, request any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if slices.Contains(publicMethods, info.FullMethod) {
			return handler(ctx, request)
		}

		metadatas, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing context metadata")
		}
		key := metadatas.Get("Authorization")
		if len(key) != 1 {
			return nil, status.Error(codes.Unauthenticated, "missing authorization token")
		}
		token, err := auth.ExtractBearerToken(key[0])
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, err.Error())
		}
		if _, err := authClient.Verify(ctx, token); err != nil {
			log.Warn().Err(err).Str("method", info.FullMethod).Msg("Rejected token")
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}
		return handler(ctx, request)
	}
}
