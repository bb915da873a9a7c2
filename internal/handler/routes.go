package handler

import (
	"net/http"

	"github.com/msomdec/yatube/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, posts *service.PostService, limiter *service.TokenBucket, db Pinger, cookieSecure bool) {
	postHandler := NewPostHandler(posts)
	authHandler := NewAuthHandler(auth, cookieSecure)

	// page resolves the principal if there is one; member also requires it.
	page := func(h http.HandlerFunc) http.Handler {
		return OptionalAuth(auth, h)
	}
	member := func(h http.HandlerFunc) http.Handler {
		return OptionalAuth(auth, RequireLogin(h))
	}
	limited := func(h http.HandlerFunc) http.Handler {
		return RateLimit(limiter, OptionalAuth(auth, h))
	}

	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.HandleFunc("GET /readyz", HandleReadyz(db))

	// Feeds and posts.
	mux.Handle("GET /{$}", page(postHandler.HandleIndex))
	mux.Handle("GET /group/{slug}/{$}", page(postHandler.HandleGroup))
	mux.Handle("GET /profile/{username}/{$}", page(postHandler.HandleProfile))
	mux.Handle("GET /posts/{id}/{$}", page(postHandler.HandleDetail))
	mux.Handle("GET /posts/more", page(postHandler.HandleMore))
	mux.Handle("GET /create/{$}", member(postHandler.HandleCreateForm))
	mux.Handle("POST /create/{$}", member(postHandler.HandleCreate))
	mux.Handle("GET /posts/{id}/edit/{$}", member(postHandler.HandleEditForm))
	mux.Handle("POST /posts/{id}/edit/{$}", member(postHandler.HandleEdit))

	// Accounts.
	mux.Handle("GET /auth/signup/{$}", page(authHandler.HandleSignupPage))
	mux.Handle("POST /auth/signup/{$}", limited(authHandler.HandleSignup))
	mux.Handle("GET /auth/login/{$}", page(authHandler.HandleLoginPage))
	mux.Handle("POST /auth/login/{$}", limited(authHandler.HandleLogin))
	mux.Handle("GET /auth/logout/{$}", page(authHandler.HandleLogout))
	mux.Handle("POST /auth/logout/{$}", page(authHandler.HandleLogout))
	mux.Handle("GET /auth/password_change/{$}", member(authHandler.HandlePasswordChangePage))
	mux.Handle("POST /auth/password_change/{$}", member(authHandler.HandlePasswordChange))
	mux.Handle("GET /auth/password_change/done/{$}", member(authHandler.HandlePasswordChangeDone))
	mux.Handle("GET /auth/password_reset/{$}", page(authHandler.HandlePasswordResetPage))
	mux.Handle("POST /auth/password_reset/{$}", page(authHandler.HandlePasswordReset))
	mux.Handle("GET /auth/password_reset/done/{$}", page(authHandler.HandlePasswordResetDone))
	mux.Handle("GET /auth/reset/{uidb64}/{token}/{$}", page(authHandler.HandlePasswordResetConfirm))
	mux.Handle("GET /auth/reset/done/{$}", page(authHandler.HandlePasswordResetComplete))

	// Static pages.
	mux.Handle("GET /about/author/{$}", page(HandleAboutAuthor))
	mux.Handle("GET /about/tech/{$}", page(HandleAboutTech))

	mux.Handle("/", page(HandleNotFound))
}
