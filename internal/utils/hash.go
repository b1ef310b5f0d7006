package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a salted bcrypt hash from the given plaintext password.
//
// bcrypt embeds a per-hash random salt, so hashing the same plaintext twice
// produces different stored values. cost is clamped to the valid bcrypt
// range; pass 0 to use [bcrypt.DefaultCost].
//
// Parameters:
//
//	plaintext - the password to hash
//	cost      - bcrypt cost factor (work parameter)
//
// Returns:
//
//	string - the encoded bcrypt hash, safe to persist
//	error  - non-nil if hashing fails
func HashPassword(plaintext string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the given bcrypt hash.
// Any comparison failure, including a malformed hash, yields false.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
