package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVaultRoundTrip(t *testing.T) {
	encoded, err := GenerateKey()
	require.NoError(t, err)

	vault, err := NewVault(encoded)
	require.NoError(t, err)

	token, err := vault.Encrypt("demo-api-key")
	require.NoError(t, err)
	assert.NotEqual(t, "demo-api-key", token)

	plaintext, err := vault.Decrypt(token)
	require.NoError(t, err)
	assert.Equal(t, "demo-api-key", plaintext)
}

func TestVaultRejectsForeignToken(t *testing.T) {
	firstKey, err := GenerateKey()
	require.NoError(t, err)
	secondKey, err := GenerateKey()
	require.NoError(t, err)

	first, err := NewVault(firstKey)
	require.NoError(t, err)
	second, err := NewVault(secondKey)
	require.NoError(t, err)

	token, err := first.Encrypt("demo-api-key")
	require.NoError(t, err)

	_, err = second.Decrypt(token)
	assert.Error(t, err)
}

func TestNewVaultInvalidKey(t *testing.T) {
	_, err := NewVault("not-a-fernet-key")
	assert.Error(t, err)
}
