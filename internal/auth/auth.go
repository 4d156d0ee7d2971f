// Package auth implements password hashing for credential storage.
//
// Passwords are stored as hex-encoded SHA-256 digests of the password
// concatenated with a per-user salt. The salt itself is the hex SHA-256
// digest of 32 bytes from crypto/rand, so both columns hold fixed-width
// 64-character hex strings.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// GenerateSalt returns a new random salt as a 64-character hex string.
func GenerateSalt() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	sum := sha256.Sum256(buf)
	return hex.EncodeToString(sum[:]), nil
}

// HashWithSalt returns the hex SHA-256 digest of password concatenated
// with salt. Verification recomputes this and compares against the
// stored hash.
func HashWithSalt(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}

// HashPassword generates a fresh salt and hashes password with it,
// returning both for storage.
func HashPassword(password string) (hash, salt string, err error) {
	salt, err = GenerateSalt()
	if err != nil {
		return "", "", err
	}
	return HashWithSalt(password, salt), salt, nil
}
