// AngelaMos | 2026
// security.go

package core

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2Iterations = 10000
	pbkdf2KeyLen     = 64
	saltLength       = 32
	tokenLength      = 32
)

// HashPassword derives a PBKDF2-SHA256 key from the password. When salt is
// nil a fresh random 32-byte salt is generated. Hash and salt are hex-encoded;
// the derivation is deterministic for a given (password, salt) pair.
func HashPassword(password string, salt []byte) (string, string, error) {
	if salt == nil {
		salt = make([]byte, saltLength)
		if _, err := rand.Read(salt); err != nil {
			return "", "", fmt.Errorf("generate salt: %w", err)
		}
	}

	key := pbkdf2.Key(
		[]byte(password),
		salt,
		pbkdf2Iterations,
		pbkdf2KeyLen,
		sha256.New,
	)

	return hex.EncodeToString(key), hex.EncodeToString(salt), nil
}

// VerifyPassword recomputes the hash with the stored salt and compares in
// constant time.
func VerifyPassword(password, hashHex, saltHex string) (bool, error) {
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false, fmt.Errorf("decode salt: %w", err)
	}

	expected, err := hex.DecodeString(hashHex)
	if err != nil {
		return false, fmt.Errorf("decode hash: %w", err)
	}

	key := pbkdf2.Key(
		[]byte(password),
		salt,
		pbkdf2Iterations,
		pbkdf2KeyLen,
		sha256.New,
	)

	return subtle.ConstantTimeCompare(key, expected) == 1, nil
}

var (
	dummyHash string
	dummySalt string
)

func init() {
	hash, salt, err := HashPassword("dummy_password_for_timing_attack_prevention", nil)
	if err != nil {
		panic(fmt.Sprintf("security: failed to generate dummy hash: %v", err))
	}
	dummyHash = hash
	dummySalt = salt
}

// VerifyPasswordTimingSafe behaves like VerifyPassword but burns the same
// derivation work against a dummy hash when the account has no stored
// password, so unknown emails cannot be distinguished by response time.
func VerifyPasswordTimingSafe(password, hashHex, saltHex string) (bool, error) {
	if hashHex == "" || saltHex == "" {
		//nolint:errcheck // result discarded, the work is the point
		_, _ = VerifyPassword(password, dummyHash, dummySalt)
		return false, nil
	}

	return VerifyPassword(password, hashHex, saltHex)
}

// GenerateSecureToken returns 32 bytes of cryptographically secure randomness,
// hex-encoded. Used for both registration and session tokens.
func GenerateSecureToken() (string, error) {
	bytes := make([]byte, tokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generate random bytes: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
