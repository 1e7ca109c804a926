package cryptox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthToken_Deterministic(t *testing.T) {
	secret := bytes.Repeat([]byte{0x11}, CardSecretSize)

	a, err := AuthToken(secret, "1234")
	require.NoError(t, err)
	b, err := AuthToken(secret, "1234")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, TagSize)
}

func TestAuthToken_DependsOnBothInputs(t *testing.T) {
	secretA := bytes.Repeat([]byte{0x11}, CardSecretSize)
	secretB := bytes.Repeat([]byte{0x22}, CardSecretSize)

	base, err := AuthToken(secretA, "1234")
	require.NoError(t, err)

	otherPIN, err := AuthToken(secretA, "1235")
	require.NoError(t, err)
	assert.NotEqual(t, base, otherPIN)

	otherSecret, err := AuthToken(secretB, "1234")
	require.NoError(t, err)
	assert.NotEqual(t, base, otherSecret)
}

func TestAuthToken_RejectsShortSecret(t *testing.T) {
	_, err := AuthToken(make([]byte, CardSecretSize-1), "1234")
	require.Error(t, err)
}

func TestVerifyAuthToken(t *testing.T) {
	secret := bytes.Repeat([]byte{0x33}, CardSecretSize)
	tok, err := AuthToken(secret, "0000")
	require.NoError(t, err)

	assert.True(t, VerifyAuthToken(tok, tok))

	tampered := append([]byte(nil), tok...)
	tampered[0] ^= 0x01
	assert.False(t, VerifyAuthToken(tok, tampered))
	assert.False(t, VerifyAuthToken(tok, tok[:len(tok)-1]))
}

func TestRandomBytes(t *testing.T) {
	a, err := RandomBytes(32)
	require.NoError(t, err)
	b, err := RandomBytes(32)
	require.NoError(t, err)

	require.Len(t, a, 32)
	require.Len(t, b, 32)
	assert.NotEqual(t, a, b)
}
