package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/synergysphere/sphere/internal/auth"
)

// Auth rejects requests without a valid bearer token and stores the token's
// user ID in the request context. Browsers cannot set headers on a WebSocket
// upgrade, so the access_token query parameter is accepted when the
// Authorization header is absent.
func Auth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := extractBearer(r)
			if tok == "" {
				tok = r.URL.Query().Get("access_token")
			}
			if tok == "" {
				unauthorized(w)
				return
			}

			userID, err := auth.UserIDFromToken(jwtSecret, tok)
			if err != nil {
				log.Debug().Err(err).Str("path", r.URL.Path).Msg("auth: rejected token")
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	writeProblem(w, http.StatusUnauthorized, `{"title":"Unauthorized","status":401,"detail":"missing or invalid credentials"}`)
}

func extractBearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return h[7:]
	}
	return ""
}

// writeProblem sends a pre-rendered problem+json body. http.Error would force
// a text/plain content type.
func writeProblem(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
