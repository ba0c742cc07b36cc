// Package credentials hashes and verifies user passwords with bcrypt.
package credentials

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt rejects passwords longer than this many bytes.
const maxBcryptInput = 72

// Cost is the bcrypt work factor used for new hashes.
var Cost = bcrypt.DefaultCost

// Hash returns a salted bcrypt hash of password. Two calls with the same
// password produce different hashes.
func Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(prepare(password), Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether candidate matches storedHash. A malformed or empty
// storedHash is a mismatch, never an error.
func Verify(candidate, storedHash string) bool {
	if storedHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(storedHash), prepare(candidate)) == nil
}

// Long passphrases are digested first so bcrypt neither fails nor
// truncates them.
func prepare(password string) []byte {
	if len(password) <= maxBcryptInput {
		return []byte(password)
	}
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
