package middleware

import (
	"net/http"
	"strings"

	"larismanis/internal/auth"
	"larismanis/internal/httputil"
)

// AuthMiddleware verifies the Supabase bearer token on every request and
// stores the user id and raw token in the request context. The raw token is
// kept because outbound calls to the serverless functions forward the user's
// own credential.
func AuthMiddleware(verifier auth.JWTVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Health check stays public
			if r.URL.Path == "/health" {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			r = httputil.WithUserID(r, claims.GetUserID())
			r = httputil.WithBearerToken(r, token)
			next.ServeHTTP(w, r)
		})
	}
}
