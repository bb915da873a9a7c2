package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/yatube/internal/domain"
	"github.com/msomdec/yatube/internal/form"
	"github.com/msomdec/yatube/internal/service"
	"github.com/msomdec/yatube/internal/view"
)

// AuthHandler handles signup, login, logout and the password pages.
type AuthHandler struct {
	auth         *service.AuthService
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, cookieSecure: cookieSecure}
}

// HandleSignupPage renders the registration form.
// GET /auth/signup/
func (h *AuthHandler) HandleSignupPage(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, view.SignupPage(&form.SignupForm{Errors: form.Errors{}}))
}

// HandleSignup creates the account and sends the new user to the index.
// POST /auth/signup/
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	f := form.ParseSignupForm(r.PostForm)
	user, err := h.auth.Register(r.Context(), f)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			render(w, r, http.StatusUnprocessableEntity, view.SignupPage(f))
			return
		}
		serverError(w, r, "register user", err)
		return
	}

	slog.Info("user registered", "user_id", user.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLoginPage renders the login form.
// GET /auth/login/
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	f := &form.LoginForm{Next: r.URL.Query().Get("next"), Errors: form.Errors{}}
	render(w, r, http.StatusOK, view.LoginPage(f))
}

// HandleLogin verifies the credentials, sets the session cookie and follows
// the next parameter when it points at this site.
// POST /auth/login/
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	f := form.ParseLoginForm(r.PostForm)
	if f.Next == "" {
		f.Next = r.URL.Query().Get("next")
	}

	token, err := h.auth.Login(r.Context(), f)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			render(w, r, http.StatusUnprocessableEntity, view.LoginPage(f))
		case errors.Is(err, domain.ErrUnauthorized):
			render(w, r, http.StatusUnauthorized, view.LoginPage(f))
		default:
			serverError(w, r, "login user", err)
		}
		return
	}

	h.setSessionCookie(w, token)
	http.Redirect(w, r, safeNext(f.Next), http.StatusSeeOther)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.auth.TokenTTL().Seconds()),
	})
}

// HandleLogout clears the auth cookie and confirms the logout.
// GET, POST /auth/logout/
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	render(w, r, http.StatusOK, view.LoggedOutPage())
}

// HandlePasswordChangePage renders the password change form.
// GET /auth/password_change/
func (h *AuthHandler) HandlePasswordChangePage(w http.ResponseWriter, r *http.Request) {
	f := &form.PasswordChangeForm{Errors: form.Errors{}}
	render(w, r, http.StatusOK, view.PasswordChangePage(UserFromContext(r.Context()), f))
}

// HandlePasswordChange replaces the signed-in user's password.
// POST /auth/password_change/
func (h *AuthHandler) HandlePasswordChange(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	user := UserFromContext(r.Context())
	f := form.ParsePasswordChangeForm(r.PostForm)
	token, err := h.auth.ChangePassword(r.Context(), user, f)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			render(w, r, http.StatusUnprocessableEntity, view.PasswordChangePage(user, f))
		case errors.Is(err, domain.ErrAuthenticationRequired):
			redirectToLogin(w, r)
		default:
			serverError(w, r, "change password", err)
		}
		return
	}

	slog.Info("password changed", "user_id", user.ID)
	h.setSessionCookie(w, token)
	http.Redirect(w, r, "/auth/password_change/done/", http.StatusSeeOther)
}

// GET /auth/password_change/done/
func (h *AuthHandler) HandlePasswordChangeDone(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, view.PasswordChangeDonePage(UserFromContext(r.Context())))
}

// HandlePasswordResetPage renders the reset request form.
// GET /auth/password_reset/
func (h *AuthHandler) HandlePasswordResetPage(w http.ResponseWriter, r *http.Request) {
	f := &form.PasswordResetForm{Errors: form.Errors{}}
	render(w, r, http.StatusOK, view.PasswordResetPage(UserFromContext(r.Context()), f))
}

// HandlePasswordReset accepts a reset request. No mail is sent, so the
// response does not reveal whether the address belongs to an account.
// POST /auth/password_reset/
func (h *AuthHandler) HandlePasswordReset(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	f := form.ParsePasswordResetForm(r.PostForm)
	if !f.Validate() {
		render(w, r, http.StatusUnprocessableEntity, view.PasswordResetPage(UserFromContext(r.Context()), f))
		return
	}

	slog.Info("password reset requested", "request_id", RequestIDFromContext(r.Context()))
	http.Redirect(w, r, "/auth/password_reset/done/", http.StatusSeeOther)
}

// GET /auth/password_reset/done/
func (h *AuthHandler) HandlePasswordResetDone(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, view.PasswordResetDonePage(UserFromContext(r.Context())))
}

// HandlePasswordResetConfirm always reports the link as invalid because no
// reset tokens are ever issued.
// GET /auth/reset/{uidb64}/{token}/
func (h *AuthHandler) HandlePasswordResetConfirm(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, view.PasswordResetConfirmPage(UserFromContext(r.Context())))
}

// GET /auth/reset/done/
func (h *AuthHandler) HandlePasswordResetComplete(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, view.PasswordResetCompletePage(UserFromContext(r.Context())))
}
