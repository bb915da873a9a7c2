package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"

	"github.com/msomdec/yatube/internal/view"
)

const authCookieName = "auth_token"

// render writes the component with the given status code.
func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		slog.Error("render page", "path", r.URL.Path, "error", err)
	}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusNotFound, view.NotFoundPage(UserFromContext(r.Context())))
}

func serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slog.Error(msg, "error", err, "path", r.URL.Path, "request_id", RequestIDFromContext(r.Context()))
	render(w, r, http.StatusInternalServerError, view.ServerErrorPage(UserFromContext(r.Context())))
}

// loginURL builds the login redirect for the given path. Slashes in next are
// kept literal so the result reads /auth/login/?next=/create/.
func loginURL(next string) string {
	return "/auth/login/?next=" + strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, loginURL(r.URL.RequestURI()), http.StatusFound)
}

// safeNext returns next when it is a path on this site and "/" otherwise.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, `/\`) {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return next
}
