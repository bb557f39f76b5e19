package core

import (
	"context"
	"fmt"
)

// RepositoryAuthService implements AuthService on top of a UserRepository and
// a TokenIssuer.
type RepositoryAuthService struct {
	users  UserRepository
	tokens *TokenIssuer
}

func NewRepositoryAuthService(users UserRepository, tokens *TokenIssuer) *RepositoryAuthService {
	return &RepositoryAuthService{users: users, tokens: tokens}
}

// Register validates the fields, pre-checks uniqueness, hashes the password
// and persists the identity, returning its new id.
//
// The pre-check is advisory: it gives the friendly error without burning
// bcrypt time, but two concurrent registrations can both pass it. The unique
// constraints in the users table are authoritative and the insert maps their
// violation to ErrDuplicateIdentity as well.
func (s *RepositoryAuthService) Register(ctx context.Context, email, username, password string) (int64, error) {
	if err := ValidateRegistration(email, username, password); err != nil {
		return 0, err
	}

	existing, err := s.users.FindByEmailOrUsername(ctx, email, username)
	if err != nil {
		return 0, fmt.Errorf("uniqueness pre-check: %w", err)
	}
	if existing != nil {
		return 0, ErrDuplicateIdentity
	}

	// Hash only after uniqueness passed; bcrypt is deliberately expensive.
	hash, err := HashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.users.Create(ctx, email, username, hash)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Login checks the credentials against the directory and returns a bearer
// token with the default lifetime.
func (s *RepositoryAuthService) Login(ctx context.Context, email, password string) (string, error) {
	if err := ValidateLogin(email, password); err != nil {
		return "", err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	ok, err := VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return "", ErrWrongPassword
	}

	token, err := s.tokens.Issue(user.ID, 0)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
