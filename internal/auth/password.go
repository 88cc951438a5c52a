// Package auth provides password hashing and bearer token handling.
package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost matches the original deployment's hashing settings.
const DefaultBcryptCost = 12

// HashPassword returns the bcrypt hash of password at the given cost.
// A cost outside bcrypt's supported range falls back to DefaultBcryptCost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
