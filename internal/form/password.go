package form

import (
	"strings"
	"unicode"
)

// MinPasswordLength is the shortest password accepted at signup and on
// password change.
const MinPasswordLength = 8

var commonPasswords = map[string]bool{
	"password":    true,
	"password1":   true,
	"password123": true,
	"12345678":    true,
	"123456789":   true,
	"1234567890":  true,
	"qwerty123":   true,
	"qwertyuiop":  true,
	"iloveyou":    true,
	"sunshine":    true,
	"princess":    true,
	"football":    true,
	"baseball":    true,
	"welcome1":    true,
	"abc12345":    true,
	"letmein1":    true,
	"trustno1":    true,
	"11111111":    true,
	"00000000":    true,
	"passw0rd":    true,
}

// PasswordProblems returns every policy violation for the password. The
// username may be empty when it is not known yet.
func PasswordProblems(password, username string) []string {
	var problems []string

	if len([]rune(password)) < MinPasswordLength {
		problems = append(problems, "This password is too short. It must contain at least 8 characters.")
	}
	if password != "" && isAllDigits(password) {
		problems = append(problems, "This password is entirely numeric.")
	}
	if commonPasswords[strings.ToLower(password)] {
		problems = append(problems, "This password is too common.")
	}
	if similarToUsername(password, username) {
		problems = append(problems, "The password is too similar to the username.")
	}

	return problems
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func similarToUsername(password, username string) bool {
	if len(username) < 3 || password == "" {
		return false
	}
	p := strings.ToLower(password)
	u := strings.ToLower(username)
	return p == u || strings.Contains(p, u) || strings.Contains(u, p)
}
