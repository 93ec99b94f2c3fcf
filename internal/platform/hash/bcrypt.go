package hash

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch reports that a credential does not match its stored hash.
var ErrMismatch = errors.New("credential mismatch")

// Bcrypt hashes credentials with a per-credential salt baked into the
// output string.
type Bcrypt struct {
	cost int
}

func NewBcrypt() *Bcrypt {
	return &Bcrypt{cost: bcrypt.DefaultCost}
}

// NewBcryptWithCost exists for tests, which pass bcrypt.MinCost to keep
// hashing fast.
func NewBcryptWithCost(cost int) *Bcrypt {
	return &Bcrypt{cost: cost}
}

func (b *Bcrypt) Hash(plain string) (string, error) {
	// bcrypt silently truncates inputs past 72 bytes; reject instead.
	if len(plain) > 72 {
		return "", fmt.Errorf("hash: credential longer than 72 bytes")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), b.cost)
	if err != nil {
		return "", fmt.Errorf("hash: generate: %w", err)
	}
	return string(hashed), nil
}

func (b *Bcrypt) Verify(hashed, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatch
		}
		return fmt.Errorf("hash: compare: %w", err)
	}
	return nil
}
