package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Surabhi11/fantasy-cricket/services"
)

// SessionCookieName is the httpOnly cookie carrying the session token.
const SessionCookieName = "fc_session"

type contextKey string

const userContextKey contextKey = "user"

// Authenticate resolves the session cookie to a user and stores the user
// on the request context. Requests without a valid session get a 401.
func Authenticate(authService services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil {
				unauthorized(w)
				return
			}

			user, err := authService.UserBySession(r.Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, services.ErrNotAuthenticated) {
					unauthorized(w)
					return
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]string{"error": "internal server error"})
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AuthenticateOptional attaches the user when a valid session cookie is
// present and lets anonymous requests through untouched. Used by
// endpoints that serve both visitors and logged-in users.
func AuthenticateOptional(authService services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cookie, err := r.Cookie(SessionCookieName); err == nil {
				if user, err := authService.UserBySession(r.Context(), cookie.Value); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), userContextKey, user))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "Please login to continue"})
}
