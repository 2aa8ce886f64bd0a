package handler

import (
	"net/http"

	"adboard/internal/domain"
	"adboard/internal/graph"
	"adboard/internal/service"
)

const sessionCookie = "auth_token"

// RequireSession protects page routes. Requests without a valid session
// cookie are redirected to the login form.
func RequireSession(auth *service.AuthService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := sessionUser(r, auth)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r.WithContext(graph.WithViewer(r.Context(), user)))
	})
}

// OptionalSession attaches the session user to the context when the
// cookie is present and valid, and lets the request through either way.
// The GraphQL endpoint uses it so that the one gated field can check
// for a viewer while everything else stays open.
func OptionalSession(auth *service.AuthService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, err := sessionUser(r, auth); err == nil {
			r = r.WithContext(graph.WithViewer(r.Context(), user))
		}
		next.ServeHTTP(w, r)
	})
}

func sessionUser(r *http.Request, auth *service.AuthService) (*domain.User, error) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil, err
	}
	return auth.UserForToken(r.Context(), cookie.Value)
}

// SecurityHeaders sets a conservative set of response headers on every
// request.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "same-origin")
		next.ServeHTTP(w, r)
	})
}
