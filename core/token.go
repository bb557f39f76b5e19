package core

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token verification outcomes. Expired is kept distinct from invalid: an
// expired token means "log in again", an invalid one means the token is
// corrupt or forged.
var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the payload embedded in a bearer token.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"user_id"`
}

// TokenIssuer signs and verifies bearer tokens with a process-wide HS256
// secret. The secret is fixed at construction and never rotated; tokens are
// stateless, so an issued token stays valid until its expiry regardless of
// later account changes.
type TokenIssuer struct {
	secret     []byte
	defaultTTL time.Duration
}

func NewTokenIssuer(secret string, defaultTTL time.Duration) *TokenIssuer {
	if defaultTTL <= 0 {
		defaultTTL = time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), defaultTTL: defaultTTL}
}

// DefaultTTL returns the lifetime applied when Issue is called with ttl <= 0.
func (t *TokenIssuer) DefaultTTL() time.Duration {
	return t.defaultTTL
}

// Issue creates a signed token asserting userID for the given lifetime.
// ttl <= 0 selects the configured default; arbitrarily short lifetimes are
// accepted so tests can manufacture soon-expiring tokens.
func (t *TokenIssuer) Issue(userID int64, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = t.defaultTTL
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
		UserID: userID,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify parses and validates a token string and returns the asserted user
// id. Failures collapse to ErrTokenExpired or ErrTokenInvalid.
func (t *TokenIssuer) Verify(tokenString string) (int64, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrTokenInvalid
	}
	if !token.Valid || claims.UserID <= 0 {
		return 0, ErrTokenInvalid
	}
	return claims.UserID, nil
}
