// AngelaMos | 2026
// security_test.go

package core

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_Deterministic(t *testing.T) {
	hash1, salt1, err := HashPassword("Correct#Horse1", nil)
	require.NoError(t, err)

	salt, err := hex.DecodeString(salt1)
	require.NoError(t, err)

	hash2, salt2, err := HashPassword("Correct#Horse1", salt)
	require.NoError(t, err)

	assert.Equal(t, hash1, hash2)
	assert.Equal(t, salt1, salt2)
}

func TestHashPassword_FreshSaltPerCall(t *testing.T) {
	hash1, salt1, err := HashPassword("Correct#Horse1", nil)
	require.NoError(t, err)

	hash2, salt2, err := HashPassword("Correct#Horse1", nil)
	require.NoError(t, err)

	assert.NotEqual(t, salt1, salt2)
	assert.NotEqual(t, hash1, hash2)
}

func TestHashPassword_OutputLengths(t *testing.T) {
	hash, salt, err := HashPassword("Correct#Horse1", nil)
	require.NoError(t, err)

	// 64-byte key and 32-byte salt, hex-encoded.
	assert.Len(t, hash, 128)
	assert.Len(t, salt, 64)
}

func TestVerifyPassword(t *testing.T) {
	hash, salt, err := HashPassword("Correct#Horse1", nil)
	require.NoError(t, err)

	ok, err := VerifyPassword("Correct#Horse1", hash, salt)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong-password", hash, salt)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPassword_MalformedEncoding(t *testing.T) {
	_, err := VerifyPassword("anything", "not-hex", "also-not-hex")
	assert.Error(t, err)
}

func TestVerifyPasswordTimingSafe_EmptyHash(t *testing.T) {
	ok, err := VerifyPasswordTimingSafe("anything", "", "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswordTimingSafe_DelegatesWhenStored(t *testing.T) {
	hash, salt, err := HashPassword("Correct#Horse1", nil)
	require.NoError(t, err)

	ok, err := VerifyPasswordTimingSafe("Correct#Horse1", hash, salt)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGenerateSecureToken(t *testing.T) {
	token1, err := GenerateSecureToken()
	require.NoError(t, err)

	token2, err := GenerateSecureToken()
	require.NoError(t, err)

	assert.Len(t, token1, 64)
	assert.NotEqual(t, token1, token2)

	_, err = hex.DecodeString(token1)
	assert.NoError(t, err)
}
