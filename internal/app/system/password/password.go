// Package password wraps bcrypt hashing for account credentials.
// Plaintext passwords never leave this package's call sites unhashed.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrTooShort is returned when a candidate password fails the length floor.
var ErrTooShort = errors.New("password must be at least 8 characters")

const minLength = 8

// Validate checks the plaintext password policy.
func Validate(plain string) error {
	if len(plain) < minLength {
		return ErrTooShort
	}
	return nil
}

// Hash returns the bcrypt hash of plain at the default cost.
func Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plain matches the stored hash.
func Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
