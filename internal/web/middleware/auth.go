package middleware

import (
	"context"
	"net/http"

	"github.com/mfranke/numguess/internal/model"
	"github.com/mfranke/numguess/internal/services/auth"
)

type contextKey string

const (
	userContextKey         contextKey = "user"
	sessionTokenContextKey contextKey = "session_token"
)

// SessionCookieName is the cookie holding the signed session token
const SessionCookieName = "session"

// GetUser retrieves the authenticated user from the request context.
// Returns nil if no user is authenticated.
func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

// GetSessionToken retrieves the raw session token from the request
// context. Empty if the request is unauthenticated.
func GetSessionToken(ctx context.Context) string {
	token, _ := ctx.Value(sessionTokenContextKey).(string)
	return token
}

// Auth returns middleware that requires authentication.
// Redirects to the login page if not authenticated.
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, token := userFromCookie(r, authService)
			if !user.IsAuthenticated() {
				http.Redirect(w, r, "/login?next="+r.URL.Path, http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			ctx = context.WithValue(ctx, sessionTokenContextKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth returns middleware that attempts authentication but
// doesn't require it. Sets the user in context if authenticated.
func OptionalAuth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, token := userFromCookie(r, authService)
			ctx := context.WithValue(r.Context(), userContextKey, user)
			ctx = context.WithValue(ctx, sessionTokenContextKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func userFromCookie(r *http.Request, authService *auth.Service) (*model.User, string) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil, ""
	}

	user, session, err := authService.Authenticate(r.Context(), cookie.Value)
	if err != nil {
		return nil, ""
	}

	return user, session.Token
}
