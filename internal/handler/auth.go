package handler

import (
	"errors"
	"log/slog"
	"net"
	"net/http"

	"adboard/internal/domain"
	"adboard/internal/service"
)

// AuthHandler serves the login form and manages the session cookie.
type AuthHandler struct {
	auth         *service.AuthService
	limiter      *service.LoginLimiter
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, limiter *service.LoginLimiter, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, limiter: limiter, cookieSecure: cookieSecure}
}

type loginPageData struct {
	Error string
}

// HandleLoginPage renders the login form.
// GET /login
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, http.StatusOK, "login.html", loginPageData{})
}

// HandleLogin processes the login form. An unknown username and a wrong
// password are reported separately, matching the page's historical
// behavior. Success sets the session cookie and redirects to /home.
// POST /login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow(clientAddr(r)) {
		renderPage(w, http.StatusTooManyRequests, "login.html", loginPageData{
			Error: "Too many login attempts. Try again in a minute.",
		})
		return
	}

	if err := r.ParseForm(); err != nil {
		renderPage(w, http.StatusBadRequest, "login.html", loginPageData{Error: "Invalid form submission"})
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	token, err := h.auth.Login(r.Context(), username, password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			renderPage(w, http.StatusUnauthorized, "login.html", loginPageData{Error: "Invalid Username"})
		case errors.Is(err, domain.ErrUnauthorized):
			renderPage(w, http.StatusUnauthorized, "login.html", loginPageData{Error: "Invalid Password"})
		default:
			slog.Error("login", "error", err)
			renderPage(w, http.StatusInternalServerError, "login.html", loginPageData{Error: "Something went wrong. Please try again."})
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400, // matches the token's 24h lifetime
	})
	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

// HandleLogout clears the session cookie and returns to the login form.
// GET /logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
