package usecases

import (
	"errors"
	"fmt"

	"github.com/Jataveda/Agriconnect/confs"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher turns a submitted password into its stored form and checks
// a login attempt against it.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Matches(stored, plain string) bool
}

// NewPasswordHasher picks the hasher for an AUTH_PASSWORD_MODE value.
// Anything other than bcrypt keeps passwords as submitted.
func NewPasswordHasher(mode string) PasswordHasher {
	if mode == confs.PasswordModeBcrypt {
		return BcryptHasher{Cost: bcrypt.DefaultCost}
	}
	return PlaintextHasher{}
}

// PlaintextHasher stores passwords verbatim and compares them exactly.
type PlaintextHasher struct{}

func (PlaintextHasher) Hash(plain string) (string, error) { return plain, nil }

func (PlaintextHasher) Matches(stored, plain string) bool { return stored == plain }

type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.Cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", invalid("Password is too long")
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

func (BcryptHasher) Matches(stored, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
}
