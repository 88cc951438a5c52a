package store

import (
	"context"
	"fmt"
	"time"

	"tanihitung/internal/apperr"
)

// User is a registered account. Password holds the bcrypt hash, never the
// plaintext.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateUser inserts a new user. The password must already be hashed.
// Returns a conflict error when the email is taken.
func (s *Store) CreateUser(ctx context.Context, name, email, passwordHash string) (*User, error) {
	u := &User{Name: name, Email: email, Password: passwordHash}

	err := s.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, name, email, passwordHash).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Wrap(apperr.KindConflict, fmt.Sprintf("email %s is already registered", email), err)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return u, nil
}

// UserByEmail returns the user with the given email.
func (s *Store) UserByEmail(ctx context.Context, email string) (*User, error) {
	u := &User{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, email, password, created_at, updated_at
		FROM users WHERE email = $1
	`, email).Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, apperr.Newf(apperr.KindNotFound, "user with email %s not found", email)
		}
		return nil, fmt.Errorf("user by email: %w", err)
	}
	return u, nil
}

// UserByID returns the user with the given id.
func (s *Store) UserByID(ctx context.Context, id int64) (*User, error) {
	u := &User{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, email, password, created_at, updated_at
		FROM users WHERE id = $1
	`, id).Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, apperr.Newf(apperr.KindNotFound, "user with id %d not found", id)
		}
		return nil, fmt.Errorf("user by id: %w", err)
	}
	return u, nil
}
