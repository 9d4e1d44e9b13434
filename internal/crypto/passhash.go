// Package crypto implements server-side password hashing and verification.
package crypto

import (
	"crypto/rand"
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters (tuned for server-side hashing).
const (
	argonTime    uint32 = 3         // iterations
	argonMemory  uint32 = 64 * 1024 // 64 MB
	argonThreads uint8  = 1
	argonKeyLen  uint32 = 32

	saltLen = 16
)

// NewCredential hashes a password with a fresh per-user salt and returns
// (hash, salt) for storage on the user row.
func NewCredential(password string) (hash, salt []byte, err error) {
	salt = make([]byte, saltLen)
	if _, err = rand.Read(salt); err != nil {
		return nil, nil, err
	}
	return hashPassword([]byte(password), salt), salt, nil
}

// VerifyCredential verifies password against a stored hash and salt.
func VerifyCredential(password string, salt, expected []byte) bool {
	got := hashPassword([]byte(password), salt)
	return subtle.ConstantTimeCompare(got, expected) == 1
}

func hashPassword(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}
