package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/msomdec/yatube/internal/domain"
	"github.com/msomdec/yatube/internal/form"
)

const (
	msgBadCredentials = "Please enter a correct username and password. Note that both fields may be case-sensitive."
	msgWrongOld       = "Your old password was entered incorrectly. Please enter it again."
)

// AuthService handles user registration, login, password changes and JWT
// token operations.
type AuthService struct {
	users      domain.UserRepository
	jwtSecret  []byte
	bcryptCost int
	tokenTTL   time.Duration
}

// NewAuthService creates a new AuthService. Tokens expire after tokenTTL.
func NewAuthService(users domain.UserRepository, jwtSecret string, bcryptCost int, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		jwtSecret:  []byte(jwtSecret),
		bcryptCost: bcryptCost,
		tokenTTL:   tokenTTL,
	}
}

// TokenTTL is the lifetime of tokens issued by Login.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenTTL
}

// Register validates the signup form and creates the account. Field errors
// are recorded on the form and reported as domain.ErrInvalidInput.
func (s *AuthService) Register(ctx context.Context, f *form.SignupForm) (*domain.User, error) {
	ok, err := f.Validate(ctx, s.users)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: signup form has errors", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(f.Password1), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     f.Username,
		FirstName:    f.FirstName,
		LastName:     f.LastName,
		Email:        f.Email,
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, user); err != nil {
		// Lost a race with a concurrent signup for the same name.
		if errors.Is(err, domain.ErrDuplicateUsername) {
			f.Errors.Add("username", "A user with that username already exists.")
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and returns a signed JWT token string. A
// missing field yields domain.ErrInvalidInput; bad credentials yield
// domain.ErrUnauthorized with a form-wide error recorded.
func (s *AuthService) Login(ctx context.Context, f *form.LoginForm) (string, error) {
	if !f.Validate() {
		return "", fmt.Errorf("%w: login form has errors", domain.ErrInvalidInput)
	}

	user, err := s.users.GetByUsername(ctx, f.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			f.Errors.Add(form.NonField, msgBadCredentials)
			return "", domain.ErrUnauthorized
		}
		return "", fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(f.Password)); err != nil {
		f.Errors.Add(form.NonField, msgBadCredentials)
		return "", domain.ErrUnauthorized
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", fmt.Errorf("generate jwt: %w", err)
	}

	return token, nil
}

// ChangePassword replaces the principal's password after checking the old
// one. Tokens issued before the change stop validating, so a fresh token for
// the principal is returned to keep the current session signed in.
func (s *AuthService) ChangePassword(ctx context.Context, principal *domain.User, f *form.PasswordChangeForm) (string, error) {
	if principal == nil {
		return "", domain.ErrAuthenticationRequired
	}
	if !f.Validate(principal.Username) {
		return "", fmt.Errorf("%w: password change form has errors", domain.ErrInvalidInput)
	}

	user, err := s.users.GetByID(ctx, principal.ID)
	if err != nil {
		return "", fmt.Errorf("get user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(f.OldPassword)); err != nil {
		f.Errors.Add("old_password", msgWrongOld)
		return "", fmt.Errorf("%w: old password mismatch", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(f.NewPassword1), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return "", fmt.Errorf("update password: %w", err)
	}

	user.PasswordHash = string(hash)
	token, err := s.generateJWT(user)
	if err != nil {
		return "", fmt.Errorf("generate jwt: %w", err)
	}
	return token, nil
}

// Authenticate validates a JWT token string and loads the user it was issued
// to. Tokens signed before the user's latest password change are rejected.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*domain.User, error) {
	userID, fingerprint, err := s.parseToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !hmac.Equal([]byte(fingerprint), []byte(s.passwordFingerprint(user))) {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// parseToken checks the signature and expiry and returns the sub and pwd
// claims.
func (s *AuthService) parseToken(tokenString string) (int64, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return 0, "", domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, "", domain.ErrUnauthorized
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return 0, "", domain.ErrUnauthorized
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, "", domain.ErrUnauthorized
	}

	fingerprint, ok := claims["pwd"].(string)
	if !ok || fingerprint == "" {
		return 0, "", domain.ErrUnauthorized
	}
	return userID, fingerprint, nil
}

// passwordFingerprint keys the stored password hash with the signing secret
// so the token payload reveals nothing about the hash itself.
func (s *AuthService) passwordFingerprint(user *domain.User) string {
	mac := hmac.New(sha256.New, s.jwtSecret)
	mac.Write([]byte(user.PasswordHash))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil)[:16])
}

func (s *AuthService) generateJWT(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatInt(user.ID, 10),
		"username": user.Username,
		"pwd":      s.passwordFingerprint(user),
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
