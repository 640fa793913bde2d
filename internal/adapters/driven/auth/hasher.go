package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/fabrica-labs/plant-core/internal/core/ports/driven"
)

// Ensure Hasher implements PasswordHasher
var _ driven.PasswordHasher = (*Hasher)(nil)

// defaultBcryptCost is deliberately above bcrypt.DefaultCost; login is rare
// enough that the extra work factor is affordable.
const defaultBcryptCost = 12

// Hasher implements driven.PasswordHasher using bcrypt
type Hasher struct {
	cost int
}

// NewHasher creates a bcrypt password hasher. A cost of 0 selects the
// default work factor of 12.
func NewHasher(cost int) *Hasher {
	if cost == 0 {
		cost = defaultBcryptCost
	}
	return &Hasher{cost: cost}
}

// Hash generates a salted bcrypt hash from a plaintext password
func (h *Hasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify checks a password against a bcrypt hash. bcrypt's comparison is
// constant-time; any error, including a malformed hash, reads as a mismatch.
func (h *Hasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
