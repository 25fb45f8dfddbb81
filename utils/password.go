package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLength    = 16
	keyLength     = 32
	kdfIterations = 10000
)

// HashPassword derives a PBKDF2-HMAC-SHA256 hash with a fresh random salt
// and encodes the pair as "base64(salt).base64(hash)".
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.New("failed to generate salt")
	}

	hash := pbkdf2.Key([]byte(password), salt, kdfIterations, keyLength, sha256.New)

	return base64.StdEncoding.EncodeToString(salt) + "." + base64.StdEncoding.EncodeToString(hash), nil
}

// VerifyPassword re-derives the hash with the stored salt and compares in
// constant time.
func VerifyPassword(password, stored string) bool {
	parts := strings.Split(stored, ".")
	if len(parts) != 2 {
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}

	hash := pbkdf2.Key([]byte(password), salt, kdfIterations, keyLength, sha256.New)
	encoded := base64.StdEncoding.EncodeToString(hash)

	return subtle.ConstantTimeCompare([]byte(encoded), []byte(parts[1])) == 1
}
