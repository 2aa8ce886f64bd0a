package handler

import (
	"net/http"
)

// HandleGraphiQL serves the GraphiQL explorer for interactive use of
// the API; POST /graphql is the actual endpoint.
// GET /graphql
func HandleGraphiQL(w http.ResponseWriter, r *http.Request) {
	page, err := templateFS.ReadFile("templates/graphiql.html")
	if err != nil {
		http.Error(w, "GraphiQL page unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}
