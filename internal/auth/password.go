package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt salts per call and compares in constant time, which covers the
// hashing contract here. The cost stays at the library default so a login
// attempt is bounded CPU work.
const passwordHashCost = bcrypt.DefaultCost

// HashPassword produces a salted one-way digest of secret. Two calls with
// the same input yield different digests.
func HashPassword(secret string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(secret), passwordHashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// VerifyPassword reports whether secret is the input that produced digest.
// A malformed digest verifies as false rather than erroring.
func VerifyPassword(secret, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(secret)) == nil
}
