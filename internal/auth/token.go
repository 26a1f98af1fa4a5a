package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// tokenLength is the session token length in bytes before encoding.
const tokenLength = 32

// NewToken generates a cryptographically unpredictable session token
// and its storage digest. The token is Base64 RawURL encoded for safe
// transport in headers and cookies; only the digest is ever persisted.
func NewToken() (token, digest string, err error) {
	raw := make([]byte, tokenLength)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("generate token: %w", err)
	}
	token = base64.RawURLEncoding.EncodeToString(raw)
	return token, TokenDigest(token), nil
}

// TokenDigest computes the hex-encoded SHA-256 digest of a token,
// as stored in the sessions table.
func TokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// VerifyTokenDigest reports whether a token matches an expected digest
// using a constant-time comparison.
func VerifyTokenDigest(token, expected string) bool {
	actual := TokenDigest(token)
	return subtle.ConstantTimeCompare([]byte(actual), []byte(expected)) == 1
}
