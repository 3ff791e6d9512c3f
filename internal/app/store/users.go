package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// User is a persisted account row.
type User struct {
	ID           pgtype.UUID
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    pgtype.Timestamptz
}

// CreateUserParams holds the fields for a new account.
type CreateUserParams struct {
	ID           pgtype.UUID
	Email        string
	Name         string
	PasswordHash string
}

// CreateUser inserts a new account. A duplicate email surfaces as a unique
// violation.
func (s *Store) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	const query = `
		INSERT INTO users (id, email, name, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, name, password_hash, created_at`

	var u User
	err := s.pool.QueryRow(ctx, query, arg.ID, arg.Email, arg.Name, arg.PasswordHash).
		Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)

	return u, err
}

// UserByEmail fetches the account registered under email.
func (s *Store) UserByEmail(ctx context.Context, email string) (User, error) {
	const query = `
		SELECT id, email, name, password_hash, created_at
		FROM users
		WHERE email = $1`

	var u User
	err := s.pool.QueryRow(ctx, query, email).
		Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)

	return u, err
}

// UserByID fetches an account by its id.
func (s *Store) UserByID(ctx context.Context, id pgtype.UUID) (User, error) {
	const query = `
		SELECT id, email, name, password_hash, created_at
		FROM users
		WHERE id = $1`

	var u User
	err := s.pool.QueryRow(ctx, query, id).
		Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)

	return u, err
}
