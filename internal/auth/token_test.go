package auth

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewToken(t *testing.T) {
	token, digest, err := NewToken()
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.Len(t, raw, tokenLength)

	assert.Equal(t, TokenDigest(token), digest)
	assert.NotEqual(t, token, digest, "digest must not equal the token")
}

func TestNewToken_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		token, _, err := NewToken()
		require.NoError(t, err)
		_, dup := seen[token]
		require.False(t, dup, "token collision")
		seen[token] = struct{}{}
	}
}

func TestVerifyTokenDigest(t *testing.T) {
	token, digest, err := NewToken()
	require.NoError(t, err)

	assert.True(t, VerifyTokenDigest(token, digest))
	assert.False(t, VerifyTokenDigest("tampered", digest))

	other, _, err := NewToken()
	require.NoError(t, err)
	assert.False(t, VerifyTokenDigest(other, digest))
}
