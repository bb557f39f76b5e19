package core

import (
	"context"
	"errors"
)

// Expected auth outcomes. Handlers map these to structured responses; anything
// else is an internal error and surfaces as a generic 500.
var (
	// ErrMissingField is returned when a required field is absent or empty.
	ErrMissingField = errors.New("all fields are required")
	// ErrInvalidEmail is returned when the email does not look like an address.
	ErrInvalidEmail = errors.New("invalid email")
	// ErrWeakPassword is returned when the password fails the strength policy.
	ErrWeakPassword = errors.New("password must be at least 8 characters, with an uppercase letter, a lowercase letter, a digit and a special character")
	// ErrDuplicateIdentity is returned when the email or username is taken.
	ErrDuplicateIdentity = errors.New("email or username already in use")
	// ErrUserNotFound is returned by login when no identity has that email.
	ErrUserNotFound = errors.New("user not found")
	// ErrWrongPassword is returned by login when the password does not match.
	ErrWrongPassword = errors.New("wrong password")
)

// AuthService defines registration and login behaviour.
type AuthService interface {
	Register(ctx context.Context, email, username, password string) (int64, error)
	Login(ctx context.Context, email, password string) (string, error)
}
