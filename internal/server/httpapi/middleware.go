package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type ctxKey string

const userNameKey ctxKey = "userName"

// UserNameFromContext returns the username of a verified bearer token.
func UserNameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(userNameKey).(string)
	return name, ok && name != ""
}

// authenticateJWT verifies an "Authorization: Bearer <token>" header if one
// is present and puts the username in the request context. A missing or
// bad token is not an error here; ensureLoggedIn decides.
func (s *HTTPServer) authenticateJWT(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
		if ok && strings.EqualFold(scheme, "Bearer") && token != "" {
			if name, err := s.tokens.Verify(strings.TrimSpace(token)); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), userNameKey, name))
			}
		}
		next.ServeHTTP(w, r)
	})
}

func ensureLoggedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserNameFromContext(r.Context()); !ok {
			writeErrorMessage(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ensureCorrectUser admits only the user named by the {username} route
// parameter.
func ensureCorrectUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name, ok := UserNameFromContext(r.Context())
		if !ok || name != chi.URLParam(r, "username") {
			writeErrorMessage(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
