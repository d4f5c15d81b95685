// Package validate implements the client-side form rules for the auth pages.
// The rules and messages mirror what the backend's web client enforces, so
// both frontends reject the same inputs before any request is made.
package validate

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Kind selects which form is being validated.
type Kind string

const (
	KindLogin  Kind = "login"
	KindSignup Kind = "signup"
)

var (
	nameRe  = regexp.MustCompile(`^[A-Za-z\s]+$`)
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,6}$`)

	lowerRe   = regexp.MustCompile(`[a-z]`)
	upperRe   = regexp.MustCompile(`[A-Z]`)
	digitRe   = regexp.MustCompile(`\d`)
	specialRe = regexp.MustCompile(`[!@#$%^&*]`)
)

// passwordRules are checked in order; the first failing rule's message wins.
var passwordRules = []struct {
	ok  func(string) bool
	msg string
}{
	{lowerRe.MatchString, "Password must contain at least 1 lowercase letter"},
	{upperRe.MatchString, "Password must contain at least 1 uppercase letter"},
	{digitRe.MatchString, "Password must contain at least 1 number"},
	{specialRe.MatchString, "Password must contain at least 1 special character"},
	{func(s string) bool { return utf8.RuneCountInString(s) >= 6 }, "Password must be at least 6 characters long"},
}

// ValidName reports whether name is letters and whitespace only.
func ValidName(name string) bool { return nameRe.MatchString(name) }

// ValidEmail reports whether email has a local@domain.tld shape.
func ValidEmail(email string) bool { return emailRe.MatchString(email) }

// ValidateForm checks the fields of a login or signup form and returns nil
// when everything passes. On failure the returned error carries exactly one
// human-readable message: name (signup only), then email, then the first
// failing password rule.
func ValidateForm(kind Kind, name, email, password string) error {
	if kind == KindSignup && !ValidName(name) {
		return errors.New("Name must contain only letters and spaces")
	}
	if !ValidEmail(email) {
		return errors.New("Please enter a valid email address")
	}
	for _, rule := range passwordRules {
		if !rule.ok(password) {
			return errors.New(rule.msg)
		}
	}
	return nil
}

// Required reports whether every given field is non-blank after trimming.
func Required(fields ...string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return false
		}
	}
	return true
}
