package auth

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/overlingo-project/overlingo/pkg/auth"
	ovhttp "github.com/overlingo-project/overlingo/pkg/http"
)

// Middleware is the HTTP counterpart of UnaryInterceptor: every request needs
// "Authorization: Bearer <token>" that authClient accepts.
func Middleware(authClient Auth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.ExtractBearerToken(r.Header.Get("Authorization"))
			if err != nil {
				ovhttp.RespondError(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if _, err := authClient.Verify(r.Context(), token); err != nil {
				log.Warn().Err(err).Str("path", r.URL.Path).Msg("Rejected token")
				ovhttp.RespondError(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
