package form

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"unicode"

	"github.com/msomdec/yatube/internal/domain"
)

const (
	maxNameLength     = 150
	maxUsernameLength = 150
)

// UserLookup checks whether a username is already taken.
type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// SignupForm collects the fields of the registration page.
type SignupForm struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password1 string
	Password2 string

	Errors Errors
}

// ParseSignupForm reads the signup fields. Passwords are kept verbatim.
func ParseSignupForm(values url.Values) *SignupForm {
	return &SignupForm{
		FirstName: strings.TrimSpace(values.Get("first_name")),
		LastName:  strings.TrimSpace(values.Get("last_name")),
		Username:  strings.TrimSpace(values.Get("username")),
		Email:     strings.TrimSpace(values.Get("email")),
		Password1: values.Get("password1"),
		Password2: values.Get("password2"),
		Errors:    Errors{},
	}
}

// Validate checks every field and whether the username is free. It returns
// false when field errors were recorded.
func (f *SignupForm) Validate(ctx context.Context, users UserLookup) (bool, error) {
	if f.Errors == nil {
		f.Errors = Errors{}
	}

	if len([]rune(f.FirstName)) > maxNameLength {
		f.Errors.Add("first_name", "Ensure this value has at most 150 characters.")
	}
	if len([]rune(f.LastName)) > maxNameLength {
		f.Errors.Add("last_name", "Ensure this value has at most 150 characters.")
	}

	switch {
	case f.Username == "":
		f.Errors.Add("username", msgRequired)
	case len([]rune(f.Username)) > maxUsernameLength:
		f.Errors.Add("username", "Ensure this value has at most 150 characters.")
	case !ValidUsername(f.Username):
		f.Errors.Add("username", "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
	default:
		_, err := users.GetByUsername(ctx, f.Username)
		switch {
		case err == nil:
			f.Errors.Add("username", "A user with that username already exists.")
		case !errors.Is(err, domain.ErrNotFound):
			return false, fmt.Errorf("look up username: %w", err)
		}
	}

	switch {
	case f.Email == "":
		f.Errors.Add("email", msgRequired)
	case !ValidEmail(f.Email):
		f.Errors.Add("email", "Enter a valid email address.")
	}

	if f.Password1 == "" {
		f.Errors.Add("password1", msgRequired)
	}
	if f.Password2 == "" {
		f.Errors.Add("password2", msgRequired)
	}
	if f.Password1 != "" && f.Password2 != "" {
		if f.Password1 != f.Password2 {
			f.Errors.Add("password2", "The two password fields didn't match.")
		} else {
			for _, p := range PasswordProblems(f.Password2, f.Username) {
				f.Errors.Add("password2", p)
			}
		}
	}

	return !f.Errors.Any(), nil
}

// ValidUsername reports whether s only holds letters, digits and @.+-_.
func ValidUsername(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			continue
		}
		switch r {
		case '@', '.', '+', '-', '_':
			continue
		}
		return false
	}
	return true
}

// ValidEmail reports whether s is a bare address such as user@example.com.
func ValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	return at > 0 && strings.Contains(s[at+1:], ".")
}
