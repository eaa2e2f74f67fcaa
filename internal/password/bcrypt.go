package password

import (
	"errors"
	"fmt"

	"github.com/ErlanBelekov/account-service/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// MaxBytes is bcrypt's input limit. It counts bytes, not characters.
const MaxBytes = 72

var (
	ErrEmptyPassword = errors.New("password must not be empty")
	ErrMismatch      = errors.New("password does not match hash")
)

// Hasher turns plaintext passwords into verifiable hashes.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

type Bcrypt struct {
	cost int
}

// NewBcrypt clamps cost into bcrypt's accepted range.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &Bcrypt{cost: cost}
}

func (b *Bcrypt) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}
	if len(plaintext) > MaxBytes {
		return "", domain.ErrPasswordTooLong
	}

	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), b.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

func (b *Bcrypt) Verify(plaintext, hash string) bool {
	return Compare(plaintext, hash) == nil
}

// Compare reports ErrMismatch for a wrong password and passes through any
// other bcrypt error, e.g. a malformed hash.
func Compare(plaintext, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatch
		}
		return err
	}
	return nil
}
