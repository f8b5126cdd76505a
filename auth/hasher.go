package auth

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when a Hasher does not set one.
const DefaultCost = 10

// A Hasher digests and verifies passwords with bcrypt.
//
// The zero value uses DefaultCost.
type Hasher struct {
	Cost int

	once  sync.Once
	dummy []byte
}

// NewHasher constructs a *Hasher with DefaultCost.
func NewHasher() *Hasher { return &Hasher{Cost: DefaultCost} }

func (h *Hasher) cost() int {
	if h.Cost == 0 {
		return DefaultCost
	}

	return h.Cost
}

// Hash digests plaintext.
// Any failure, including plaintext over 72 bytes, wraps ErrHashing.
func (h *Hasher) Hash(plaintext string) ([]byte, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrHashing, err)
	}

	return b, nil
}

// Verify asserts whether plaintext matches digest.
// A malformed digest never matches.
func (h *Hasher) Verify(plaintext string, digest []byte) bool {
	return bcrypt.CompareHashAndPassword(digest, []byte(plaintext)) == nil
}

// VerifyNothing runs a comparison against a throwaway digest and always reports false.
//
// Use it where no stored digest exists so the caller spends as long as a real Verify would.
func (h *Hasher) VerifyNothing(plaintext string) bool {
	h.once.Do(func() {
		h.dummy, _ = bcrypt.GenerateFromPassword([]byte("ridewitus-placeholder"), h.cost())
	})

	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(plaintext))
	return false
}
