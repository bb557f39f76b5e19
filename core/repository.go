package core

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRecord is the identity projection stored in the persistence layer.
type UserRecord struct {
	ID           int64
	Email        string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// UserRepository defines persistence operations for identities. Lookups
// return (nil, nil) when no identity matches.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*UserRecord, error)
	FindByEmailOrUsername(ctx context.Context, email, username string) (*UserRecord, error)
	Create(ctx context.Context, email, username, passwordHash string) (int64, error)
}

// PgUserRepository implements UserRepository using pgxpool.
type PgUserRepository struct {
	db *pgxpool.Pool
}

func NewPgUserRepository(db *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{db: db}
}

func (r *PgUserRepository) FindByEmail(ctx context.Context, email string) (*UserRecord, error) {
	const q = `SELECT id, email, username, password_hash, created_at FROM users WHERE email=$1`
	return r.findOne(ctx, q, email)
}

func (r *PgUserRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*UserRecord, error) {
	const q = `SELECT id, email, username, password_hash, created_at FROM users WHERE email=$1 OR username=$2`
	return r.findOne(ctx, q, email, username)
}

// Create inserts an identity. A unique-constraint violation on email or
// username surfaces as ErrDuplicateIdentity; this is the authoritative
// uniqueness check.
func (r *PgUserRepository) Create(ctx context.Context, email, username, passwordHash string) (int64, error) {
	const q = `INSERT INTO users (email, username, password_hash) VALUES ($1,$2,$3) RETURNING id`
	var id int64
	if err := r.db.QueryRow(ctx, q, email, username, passwordHash).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateIdentity
		}
		return 0, err
	}
	return id, nil
}

func (r *PgUserRepository) findOne(ctx context.Context, query string, args ...any) (*UserRecord, error) {
	var u UserRecord
	err := r.db.QueryRow(ctx, query, args...).Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
