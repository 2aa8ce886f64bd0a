package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/graph-gophers/graphql-go"

	"adboard/internal/graph"
)

// homeQuery is the named query the home page issues against the API
// surface; the page is just another client of the schema.
const homeQuery = `{
	list_products {
		id
		product_name
		product_description
		product_price
		posted_by { username }
	}
}`

type homeProduct struct {
	ID                 string `json:"id"`
	ProductName        string `json:"product_name"`
	ProductDescription string `json:"product_description"`
	ProductPrice       int    `json:"product_price"`
	PostedBy           struct {
		Username string `json:"username"`
	} `json:"posted_by"`
}

type homePageData struct {
	Username string
	Notice   string
	Products []homeProduct
}

// HomeHandler renders the session-gated landing page.
type HomeHandler struct {
	schema *graphql.Schema
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(schema *graphql.Schema) *HomeHandler {
	return &HomeHandler{schema: schema}
}

// HandleHome executes list_products and renders the results. Under the
// strict empty-result policy an empty marketplace surfaces as a notice
// rather than an empty listing.
// GET /home
func (h *HomeHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	user := graph.ViewerFromContext(r.Context())
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	data := homePageData{Username: user.Username}

	resp := h.schema.Exec(r.Context(), homeQuery, "", nil)
	if len(resp.Errors) > 0 {
		data.Notice = resp.Errors[0].Message
	} else {
		var payload struct {
			ListProducts []homeProduct `json:"list_products"`
		}
		if err := json.Unmarshal(resp.Data, &payload); err != nil {
			slog.Error("decode home query", "error", err)
			data.Notice = "Could not load products."
		} else {
			data.Products = payload.ListProducts
		}
	}

	renderPage(w, http.StatusOK, "home.html", data)
}
