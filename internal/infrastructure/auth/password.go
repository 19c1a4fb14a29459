package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

// Password validation errors
var (
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong  = errors.New("password must be at most 72 characters")
)

// PasswordHasher hashes and verifies user credentials
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a hasher with the default cost
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: bcryptCost}
}

// Hash validates and hashes a plaintext password
func (h *PasswordHasher) Hash(password string) (string, error) {
	if err := ValidatePassword(password); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether the plaintext password matches the stored hash
func (h *PasswordHasher) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePassword enforces password length rules.
// bcrypt truncates input at 72 bytes, so longer passwords are rejected.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrPasswordTooShort
	}
	if len(password) > 72 {
		return ErrPasswordTooLong
	}
	return nil
}
