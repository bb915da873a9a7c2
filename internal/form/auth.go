package form

import (
	"net/url"
	"strings"
)

// LoginForm is the username/password pair of the login page. Next is the
// page to return to after a successful login.
type LoginForm struct {
	Username string
	Password string
	Next     string

	Errors Errors
}

func ParseLoginForm(values url.Values) *LoginForm {
	return &LoginForm{
		Username: strings.TrimSpace(values.Get("username")),
		Password: values.Get("password"),
		Next:     values.Get("next"),
		Errors:   Errors{},
	}
}

// Validate only checks presence; credentials are verified by the auth service.
func (f *LoginForm) Validate() bool {
	if f.Errors == nil {
		f.Errors = Errors{}
	}
	if f.Username == "" {
		f.Errors.Add("username", msgRequired)
	}
	if f.Password == "" {
		f.Errors.Add("password", msgRequired)
	}
	return !f.Errors.Any()
}

// PasswordChangeForm is submitted by a signed-in user to replace their password.
type PasswordChangeForm struct {
	OldPassword  string
	NewPassword1 string
	NewPassword2 string

	Errors Errors
}

func ParsePasswordChangeForm(values url.Values) *PasswordChangeForm {
	return &PasswordChangeForm{
		OldPassword:  values.Get("old_password"),
		NewPassword1: values.Get("new_password1"),
		NewPassword2: values.Get("new_password2"),
		Errors:       Errors{},
	}
}

// Validate checks presence, confirmation and the password policy. The old
// password is verified by the auth service.
func (f *PasswordChangeForm) Validate(username string) bool {
	if f.Errors == nil {
		f.Errors = Errors{}
	}
	if f.OldPassword == "" {
		f.Errors.Add("old_password", msgRequired)
	}
	if f.NewPassword1 == "" {
		f.Errors.Add("new_password1", msgRequired)
	}
	if f.NewPassword2 == "" {
		f.Errors.Add("new_password2", msgRequired)
	}
	if f.NewPassword1 != "" && f.NewPassword2 != "" {
		if f.NewPassword1 != f.NewPassword2 {
			f.Errors.Add("new_password2", "The two password fields didn't match.")
		} else {
			for _, p := range PasswordProblems(f.NewPassword2, username) {
				f.Errors.Add("new_password2", p)
			}
		}
	}
	return !f.Errors.Any()
}

// PasswordResetForm asks for the e-mail address of the account to reset.
type PasswordResetForm struct {
	Email  string
	Errors Errors
}

func ParsePasswordResetForm(values url.Values) *PasswordResetForm {
	return &PasswordResetForm{
		Email:  strings.TrimSpace(values.Get("email")),
		Errors: Errors{},
	}
}

func (f *PasswordResetForm) Validate() bool {
	if f.Errors == nil {
		f.Errors = Errors{}
	}
	switch {
	case f.Email == "":
		f.Errors.Add("email", msgRequired)
	case !ValidEmail(f.Email):
		f.Errors.Add("email", "Enter a valid email address.")
	}
	return !f.Errors.Any()
}
