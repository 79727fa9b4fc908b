// Package auth implements the credential service: salted PBKDF2 password
// hashing and constant-time verification. The encoded form matches the
// werkzeug layout ("pbkdf2:sha256:<iterations>$<salt>$<hash>") so hashes can
// be inspected and the iteration count can be raised without breaking
// existing users.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// ErrInvalidCredentials is the single generic error for any verification
// failure, so callers cannot distinguish an unknown user from a wrong
// password.
var ErrInvalidCredentials = errors.New("invalid credentials")

const (
	hashPrefix = "pbkdf2:sha256"

	// Iterations follows the current werkzeug default and is well above the
	// 100k floor for PBKDF2-SHA256.
	Iterations = 600_000

	saltBytes = 16
	keyBytes  = 32
)

// HashPassword derives a salted PBKDF2-SHA256 hash of plaintext with a fresh
// random salt. The plaintext is not retained.
func HashPassword(plaintext string) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(plaintext), salt, Iterations, keyBytes, sha256.New)
	return fmt.Sprintf("%s:%d$%s$%s", hashPrefix, Iterations,
		hex.EncodeToString(salt), hex.EncodeToString(key)), nil
}

// VerifyPassword checks plaintext against an encoded hash. Any failure,
// including a malformed hash, returns ErrInvalidCredentials.
// The digest comparison is constant-time.
func VerifyPassword(encoded, plaintext string) error {
	method, saltHex, keyHex, ok := splitHash(encoded)
	if !ok {
		return ErrInvalidCredentials
	}

	iterStr, found := strings.CutPrefix(method, hashPrefix+":")
	if !found {
		return ErrInvalidCredentials
	}
	iterations, err := strconv.Atoi(iterStr)
	if err != nil || iterations <= 0 {
		return ErrInvalidCredentials
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return ErrInvalidCredentials
	}
	want, err := hex.DecodeString(keyHex)
	if err != nil || len(want) == 0 {
		return ErrInvalidCredentials
	}

	got := pbkdf2.Key([]byte(plaintext), salt, iterations, len(want), sha256.New)
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}

// splitHash breaks "method$salt$hash" into its three parts.
func splitHash(encoded string) (method, salt, hash string, ok bool) {
	parts := strings.SplitN(encoded, "$", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}
