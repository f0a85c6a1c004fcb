package middleware

import (
	"context"
	"net/http"

	"github.com/Ankitshukla6121/pizzapal/auth"
)

// SessionCookie is the name of the HTTP-only cookie carrying the
// session token.
const SessionCookie = "token"

// Key type for context
type contextKey string

const userContextKey = contextKey("user")

// Session gates protected pages on a valid session cookie. Missing or
// invalid tokens both redirect to /login; no error is surfaced.
func Session(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			claims, err := authService.ParseToken(cookie.Value)
			if err != nil {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			// Attach identity to the request context
			ctx := context.WithValue(r.Context(), userContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the session claims attached by Session.
func UserFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(userContextKey).(*auth.Claims)
	return claims, ok
}
