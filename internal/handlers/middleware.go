package handlers

import (
	"context"
	"net/http"
	"strings"
)

// sessionCookieName is the cookie fallback for clients that cannot set
// an Authorization header.
const sessionCookieName = "session_token"

// SessionValidator resolves an opaque bearer token to a user id.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (int, error)
}

// RequireSession enforces session authentication and injects the
// resolved user id into the request context. Every failure produces
// the same generic 401 and stops further processing.
func RequireSession(sessions SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			userID, err := sessions.Validate(r.Context(), token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), contextUserKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// tokenFromRequest extracts the session token from the Authorization
// bearer header, falling back to the session cookie. The token is
// opaque either way; transport does not change its meaning.
func tokenFromRequest(r *http.Request) string {
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if auth != "" {
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return ""
		}
		return strings.TrimSpace(parts[1])
	}

	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
