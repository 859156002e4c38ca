// Package password hashes and checks shared secrets such as the scheduler key.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrHashingFailed = errors.New("secret hashing failed")
	ErrMismatch      = errors.New("secret does not match")
	ErrEmptySecret   = errors.New("empty secret")
)

const DefaultCost = bcrypt.DefaultCost

// HashPassword produces the value operators put in CRON_SECRET_HASH.
func HashPassword(secret string) (string, error) {
	return hashWithCost(secret, DefaultCost)
}

func hashWithCost(secret string, cost int) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", ErrHashingFailed
	}

	return string(hashedBytes), nil
}

func ComparePassword(hashed, secret string) error {
	if hashed == "" || secret == "" {
		return ErrEmptySecret
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(secret))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatch
		}
		return err
	}

	return nil
}
