package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost matches the cost the fixture passwords have always been
// hashed with. Low on purpose: seeding runs in dev loops and tests.
const DefaultCost = 8

// Hasher turns a plaintext credential into its stored form.
type Hasher func(plaintext string) (string, error)

// BcryptHasher returns a Hasher using bcrypt at the given cost. Costs outside
// bcrypt's accepted range fall back to DefaultCost.
func BcryptHasher(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return func(plaintext string) (string, error) {
		hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
		if err != nil {
			return "", fmt.Errorf("failed to hash password: %w", err)
		}
		return string(hash), nil
	}
}

// Verify reports whether plaintext matches a stored bcrypt hash.
func Verify(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
