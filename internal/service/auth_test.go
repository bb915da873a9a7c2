package service_test

import (
	"context"
	"errors"
	"net/url"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/msomdec/yatube/internal/domain"
	"github.com/msomdec/yatube/internal/form"
	"github.com/msomdec/yatube/internal/repository/sqlite"
	"github.com/msomdec/yatube/internal/service"
)

const testJWTSecret = "test-secret-key-for-unit-tests-0123456789"

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestAuthService(t *testing.T) (*service.AuthService, *sqlite.DB) {
	t.Helper()
	db := newTestDB(t)
	// Use cost 4 for fast tests.
	auth := service.NewAuthService(db.Users(), testJWTSecret, 4, time.Hour)
	return auth, db
}

func signupForm(username, password string) *form.SignupForm {
	return form.ParseSignupForm(url.Values{
		"first_name": {"Somebody"},
		"last_name":  {"ToTest"},
		"username":   {username},
		"email":      {username + "@test.com"},
		"password1":  {password},
		"password2":  {password},
	})
}

func registerUser(t *testing.T, auth *service.AuthService, username string) *domain.User {
	t.Helper()
	user, err := auth.Register(context.Background(), signupForm(username, "Somepessword"))
	if err != nil {
		t.Fatalf("Register %s: %v", username, err)
	}
	return user
}

func TestAuthService_Register_Success(t *testing.T) {
	auth, db := newTestAuthService(t)

	user := registerUser(t, auth, "tester")
	if user.ID == 0 {
		t.Fatal("expected user ID to be set")
	}
	if user.PasswordHash == "Somepessword" {
		t.Fatal("password stored in plain text")
	}

	n, err := db.Users().Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 user, got %d", n)
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	auth, _ := newTestAuthService(t)
	registerUser(t, auth, "dup")

	f := signupForm("dup", "Somepessword")
	_, err := auth.Register(context.Background(), f)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !f.Errors.Has("username") {
		t.Fatalf("expected username error, got %v", f.Errors)
	}
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	auth, db := newTestAuthService(t)

	_, err := auth.Register(context.Background(), signupForm("weak", "short"))
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	n, _ := db.Users().Count(context.Background())
	if n != 0 {
		t.Fatalf("expected no user to be created, got %d", n)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	auth, _ := newTestAuthService(t)
	user := registerUser(t, auth, "login")

	f := form.ParseLoginForm(url.Values{"username": {"login"}, "password": {"Somepessword"}})
	token, err := auth.Login(context.Background(), f)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	found, err := auth.Authenticate(context.Background(), token)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if found.ID != user.ID {
		t.Fatalf("expected user ID %d, got %d", user.ID, found.ID)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	auth, _ := newTestAuthService(t)
	registerUser(t, auth, "wrong")

	f := form.ParseLoginForm(url.Values{"username": {"wrong"}, "password": {"nottheone"}})
	_, err := auth.Login(context.Background(), f)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if !f.Errors.Has(form.NonField) {
		t.Fatalf("expected a form-wide error, got %v", f.Errors)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	auth, _ := newTestAuthService(t)

	f := form.ParseLoginForm(url.Values{"username": {"ghost"}, "password": {"Somepessword"}})
	if _, err := auth.Login(context.Background(), f); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	auth, _ := newTestAuthService(t)

	f := form.ParseLoginForm(url.Values{})
	if _, err := auth.Login(context.Background(), f); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_Authenticate_Invalid(t *testing.T) {
	auth, _ := newTestAuthService(t)

	if _, err := auth.Authenticate(context.Background(), "invalid-token"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_Authenticate_WrongSecret(t *testing.T) {
	auth, db := newTestAuthService(t)
	registerUser(t, auth, "secret")

	token, err := auth.Login(context.Background(),
		form.ParseLoginForm(url.Values{"username": {"secret"}, "password": {"Somepessword"}}))
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	other := service.NewAuthService(db.Users(), "another-secret-key-that-is-long-enough", 4, time.Hour)
	if _, err := other.Authenticate(context.Background(), token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()
	user := registerUser(t, auth, "changer")

	wrong := form.ParsePasswordChangeForm(url.Values{
		"old_password":  {"notmypassword"},
		"new_password1": {"Brandnewpass"},
		"new_password2": {"Brandnewpass"},
	})
	if _, err := auth.ChangePassword(ctx, user, wrong); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !wrong.Errors.Has("old_password") {
		t.Fatalf("expected old_password error, got %v", wrong.Errors)
	}

	f := form.ParsePasswordChangeForm(url.Values{
		"old_password":  {"Somepessword"},
		"new_password1": {"Brandnewpass"},
		"new_password2": {"Brandnewpass"},
	})
	fresh, err := auth.ChangePassword(ctx, user, f)
	if err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if _, err := auth.Authenticate(ctx, fresh); err != nil {
		t.Fatalf("Authenticate with the reissued token: %v", err)
	}

	login := form.ParseLoginForm(url.Values{"username": {"changer"}, "password": {"Brandnewpass"}})
	if _, err := auth.Login(ctx, login); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestAuthService_ChangePassword_Anonymous(t *testing.T) {
	auth, _ := newTestAuthService(t)

	_, err := auth.ChangePassword(context.Background(), nil, form.ParsePasswordChangeForm(url.Values{}))
	if !errors.Is(err, domain.ErrAuthenticationRequired) {
		t.Fatalf("expected ErrAuthenticationRequired, got %v", err)
	}
}

func TestAuthService_ChangePassword_RevokesEarlierTokens(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()
	user := registerUser(t, auth, "revoker")

	old, err := auth.Login(ctx, form.ParseLoginForm(url.Values{"username": {"revoker"}, "password": {"Somepessword"}}))
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	_, err = auth.ChangePassword(ctx, user, form.ParsePasswordChangeForm(url.Values{
		"old_password":  {"Somepessword"},
		"new_password1": {"Brandnewpass"},
		"new_password2": {"Brandnewpass"},
	}))
	if err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	if _, err := auth.Authenticate(ctx, old); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for a token issued before the change, got %v", err)
	}
}

func TestAuthService_Authenticate_RequiresPasswordClaim(t *testing.T) {
	auth, _ := newTestAuthService(t)
	user := registerUser(t, auth, "legacy")

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": strconv.FormatInt(user.ID, 10),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := auth.Authenticate(context.Background(), signed); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_Authenticate_DeletedUser(t *testing.T) {
	auth, db := newTestAuthService(t)
	ctx := context.Background()
	registerUser(t, auth, "gone")

	token, err := auth.Login(ctx, form.ParseLoginForm(url.Values{"username": {"gone"}, "password": {"Somepessword"}}))
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := db.SqlDB.ExecContext(ctx, "DELETE FROM users WHERE username = ?", "gone"); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	if _, err := auth.Authenticate(ctx, token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
