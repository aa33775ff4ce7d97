package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/cocoh-labs/auth-core/internal/core/ports/driven"
)

// Ensure Hasher implements PasswordHasher
var _ driven.PasswordHasher = (*Hasher)(nil)

// Hasher hashes passwords with bcrypt
type Hasher struct {
	cost int
}

// NewHasher creates a hasher at bcrypt's default cost
func NewHasher() *Hasher {
	return &Hasher{cost: bcrypt.DefaultCost}
}

// NewHasherWithCost creates a hasher with a custom bcrypt cost.
// Tests use bcrypt.MinCost to stay fast.
func NewHasherWithCost(cost int) *Hasher {
	return &Hasher{cost: cost}
}

// Hash generates a bcrypt hash from a plaintext password
func (h *Hasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify checks if a password matches a bcrypt hash
func (h *Hasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
