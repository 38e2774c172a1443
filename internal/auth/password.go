package auth

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	hashIterations = 100000
	hashKeyLength  = 64
	saltLength     = 16
)

// HashPassword derives a pbkdf2-sha512 hash and returns it as
// "salt:hash" in hex.
func HashPassword(password string) string {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		panic(err)
	}
	hash := pbkdf2.Key([]byte(password), []byte(hex.EncodeToString(salt)), hashIterations, hashKeyLength, sha512.New)
	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(hash)
}

// VerifyPassword checks a password against a stored "salt:hash" value in
// constant time. Malformed stored values never verify.
func VerifyPassword(password, stored string) bool {
	salt, want, ok := strings.Cut(stored, ":")
	if !ok || salt == "" || want == "" {
		return false
	}
	got := pbkdf2.Key([]byte(password), []byte(salt), hashIterations, hashKeyLength, sha512.New)
	wantBytes, err := hex.DecodeString(want)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(got, wantBytes) == 1
}
