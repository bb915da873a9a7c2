package handler

import (
	"net/http"

	"github.com/msomdec/yatube/internal/view"
)

// GET /about/author/
func HandleAboutAuthor(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, view.AboutAuthorPage(UserFromContext(r.Context())))
}

// GET /about/tech/
func HandleAboutTech(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, view.AboutTechPage(UserFromContext(r.Context())))
}

// HandleNotFound answers every path no other route claims.
func HandleNotFound(w http.ResponseWriter, r *http.Request) {
	notFound(w, r)
}
