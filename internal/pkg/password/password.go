package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const MinLength = 8

var (
	ErrTooShort = errors.New("password is shorter than the minimum length")
	ErrMismatch = errors.New("password does not match")
)

// HashPassword rejects short inputs before spending bcrypt work on
// them.
func HashPassword(raw string) (string, error) {
	if len(raw) < MinLength {
		return "", ErrTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func ComparePassword(hash, raw string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)); err != nil {
		return ErrMismatch
	}
	return nil
}
