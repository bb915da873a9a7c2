package form_test

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/msomdec/yatube/internal/domain"
	"github.com/msomdec/yatube/internal/form"
)

type fakeGroups map[int64]*domain.Group

func (f fakeGroups) GetByID(_ context.Context, id int64) (*domain.Group, error) {
	if g, ok := f[id]; ok {
		return g, nil
	}
	return nil, domain.ErrNotFound
}

type fakeUsers map[string]*domain.User

func (f fakeUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := f[username]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

type brokenLookup struct{}

func (brokenLookup) GetByID(context.Context, int64) (*domain.Group, error) {
	return nil, errors.New("connection reset")
}

func TestPostForm_Valid(t *testing.T) {
	groups := fakeGroups{1: {ID: 1, Title: "Cats", Slug: "cats"}}
	f := form.ParsePostForm(url.Values{"text": {"  Hello  "}, "group": {"1"}})

	ok, err := f.Validate(context.Background(), groups)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !ok {
		t.Fatalf("expected valid form, got errors %v", f.Errors)
	}
	if f.Text != "Hello" {
		t.Fatalf("expected trimmed text, got %q", f.Text)
	}
	if f.GroupID == nil || *f.GroupID != 1 {
		t.Fatalf("expected group 1, got %v", f.GroupID)
	}
	if !f.SelectedGroup(1) {
		t.Fatal("expected group 1 to be selected")
	}
}

func TestPostForm_NoGroup(t *testing.T) {
	f := form.ParsePostForm(url.Values{"text": {"Hello"}, "group": {""}})

	ok, err := f.Validate(context.Background(), fakeGroups{})
	if err != nil || !ok {
		t.Fatalf("expected valid form, got ok=%v err=%v errors=%v", ok, err, f.Errors)
	}
	if f.GroupID != nil {
		t.Fatalf("expected no group, got %d", *f.GroupID)
	}
}

func TestPostForm_EmptyText(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		f := form.ParsePostForm(url.Values{"text": {text}})
		ok, err := f.Validate(context.Background(), fakeGroups{})
		if err != nil {
			t.Fatalf("Validate: %v", err)
		}
		if ok {
			t.Fatalf("expected %q to be rejected", text)
		}
		if !f.Errors.Has("text") {
			t.Fatalf("expected text error, got %v", f.Errors)
		}
	}
}

func TestPostForm_UnknownOrMalformedGroup(t *testing.T) {
	for _, raw := range []string{"42", "abc", "-1"} {
		f := form.ParsePostForm(url.Values{"text": {"Hello"}, "group": {raw}})
		ok, err := f.Validate(context.Background(), fakeGroups{})
		if err != nil {
			t.Fatalf("Validate(%q): %v", raw, err)
		}
		if ok || !f.Errors.Has("group") {
			t.Fatalf("expected group error for %q, got %v", raw, f.Errors)
		}
	}
}

func TestPostForm_LookupFailure(t *testing.T) {
	f := form.ParsePostForm(url.Values{"text": {"Hello"}, "group": {"1"}})
	if _, err := f.Validate(context.Background(), brokenLookup{}); err == nil {
		t.Fatal("expected lookup error to be returned")
	}
}

func TestPostFormFrom(t *testing.T) {
	gid := int64(7)
	f := form.PostFormFrom(&domain.Post{Text: "Body", GroupID: &gid})
	if f.Text != "Body" || f.GroupRaw != "7" {
		t.Fatalf("unexpected prefill: %+v", f)
	}
}

func validSignup() url.Values {
	return url.Values{
		"first_name": {"Somebody"},
		"last_name":  {"ToTest"},
		"username":   {"tester"},
		"email":      {"tester@test.com"},
		"password1":  {"Somepessword"},
		"password2":  {"Somepessword"},
	}
}

func TestSignupForm_Valid(t *testing.T) {
	f := form.ParseSignupForm(validSignup())
	ok, err := f.Validate(context.Background(), fakeUsers{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !ok {
		t.Fatalf("expected valid form, got %v", f.Errors)
	}
}

func TestSignupForm_Invalid(t *testing.T) {
	taken := fakeUsers{"auth": {ID: 1, Username: "auth"}}

	tests := []struct {
		name  string
		field string
		key   string
		value string
	}{
		{"missing username", "username", "username", ""},
		{"taken username", "username", "username", "auth"},
		{"bad username chars", "username", "username", "bad name!"},
		{"missing email", "email", "email", ""},
		{"bad email", "email", "email", "not-an-email"},
		{"password mismatch", "password2", "password2", "Otherpessword"},
		{"missing password1", "password1", "password1", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			values := validSignup()
			values.Set(tc.key, tc.value)
			f := form.ParseSignupForm(values)
			ok, err := f.Validate(context.Background(), taken)
			if err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if ok {
				t.Fatal("expected form to be invalid")
			}
			if !f.Errors.Has(tc.field) {
				t.Fatalf("expected error on %q, got %v", tc.field, f.Errors)
			}
		})
	}
}

func TestSignupForm_WeakPasswords(t *testing.T) {
	for _, pw := range []string{"short", "1234567890", "password", "tester2024"} {
		values := validSignup()
		values.Set("password1", pw)
		values.Set("password2", pw)
		f := form.ParseSignupForm(values)
		ok, err := f.Validate(context.Background(), fakeUsers{})
		if err != nil {
			t.Fatalf("Validate: %v", err)
		}
		if ok || !f.Errors.Has("password2") {
			t.Fatalf("expected %q to be rejected, got %v", pw, f.Errors)
		}
	}
}

func TestPasswordProblems(t *testing.T) {
	if got := form.PasswordProblems("Somepessword", "tester"); len(got) != 0 {
		t.Fatalf("expected no problems, got %v", got)
	}
	if got := form.PasswordProblems("1234", ""); len(got) != 2 {
		t.Fatalf("expected short and numeric problems, got %v", got)
	}
}

func TestLoginForm_Validate(t *testing.T) {
	f := form.ParseLoginForm(url.Values{"username": {""}, "password": {""}})
	if f.Validate() {
		t.Fatal("expected empty login form to be invalid")
	}
	if !f.Errors.Has("username") || !f.Errors.Has("password") {
		t.Fatalf("expected both fields to be flagged, got %v", f.Errors)
	}
}

func TestPasswordChangeForm_Validate(t *testing.T) {
	f := form.ParsePasswordChangeForm(url.Values{
		"old_password":  {"Somepessword"},
		"new_password1": {"Brandnewpass"},
		"new_password2": {"Brandnewpass"},
	})
	if !f.Validate("tester") {
		t.Fatalf("expected valid form, got %v", f.Errors)
	}

	f = form.ParsePasswordChangeForm(url.Values{
		"old_password":  {"Somepessword"},
		"new_password1": {"Brandnewpass"},
		"new_password2": {"Different1"},
	})
	if f.Validate("tester") || !f.Errors.Has("new_password2") {
		t.Fatalf("expected mismatch error, got %v", f.Errors)
	}
}

func TestValidEmail(t *testing.T) {
	tests := map[string]bool{
		"tester@test.com":          true,
		"a.b+c@mail.example.org":   true,
		"Tester <tester@test.com>": false,
		"tester@localhost":         false,
		"@test.com":                false,
		"":                         false,
	}
	for in, want := range tests {
		if got := form.ValidEmail(in); got != want {
			t.Errorf("ValidEmail(%q) = %v, want %v", in, got, want)
		}
	}
}
