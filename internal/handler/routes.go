package handler

import (
	"net/http"

	"github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"adboard/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux: the GraphQL
// endpoint plus the login/home web shell.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, schema *graphql.Schema, limiter *service.LoginLimiter, cookieSecure bool) {
	authHandler := NewAuthHandler(auth, limiter, cookieSecure)
	home := NewHomeHandler(schema)

	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.HandleFunc("GET /login", authHandler.HandleLoginPage)
	mux.HandleFunc("POST /login", authHandler.HandleLogin)
	mux.Handle("GET /logout", RequireSession(auth, http.HandlerFunc(authHandler.HandleLogout)))
	mux.Handle("GET /home", RequireSession(auth, http.HandlerFunc(home.HandleHome)))
	mux.Handle("GET /{$}", http.RedirectHandler("/home", http.StatusSeeOther))

	mux.HandleFunc("GET /graphql", HandleGraphiQL)
	mux.Handle("POST /graphql", OptionalSession(auth, &relay.Handler{Schema: schema}))
}
