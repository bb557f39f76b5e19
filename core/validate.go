package core

import (
	"regexp"
	"strings"
)

// emailPattern accepts a single-@ address with non-whitespace local part,
// domain and TLD. Deliberately loose; the address is a login key, not a
// deliverability guarantee.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// passwordSpecials is the fixed special-character set accepted by the
// password policy. Characters outside letters, digits and this set are
// rejected outright.
const passwordSpecials = "@$!%*?&#"

// ValidateRegistration checks registration fields in fixed order:
// presence, then email format, then password strength. The first violated
// rule is reported.
func ValidateRegistration(email, username, password string) error {
	if email == "" || username == "" || password == "" {
		return ErrMissingField
	}
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	if !strongPassword(password) {
		return ErrWeakPassword
	}
	return nil
}

// ValidateLogin checks presence only; credential correctness is judged later
// against the directory.
func ValidateLogin(email, password string) error {
	if email == "" || password == "" {
		return ErrMissingField
	}
	return nil
}

// strongPassword requires at least 8 characters with one lowercase letter,
// one uppercase letter, one digit and one special character, drawn only from
// those classes.
func strongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		default:
			return false
		}
	}
	return lower && upper && digit && special
}
