// Package secrets wraps fernet encryption for provider API keys stored
// in the system_setting table.
package secrets

import (
	"fmt"

	"github.com/fernet/fernet-go"
)

// Vault encrypts and decrypts short secrets with a single fernet key.
type Vault struct {
	key *fernet.Key
}

// NewVault creates a Vault from a base64-encoded fernet key.
func NewVault(encodedKey string) (*Vault, error) {
	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode fernet key: %w", err)
	}
	return &Vault{key: key}, nil
}

// GenerateKey creates a new random fernet key in its encoded form.
// Used by deployments that have not configured FERNET_KEY yet.
func GenerateKey() (string, error) {
	var key fernet.Key
	if err := key.Generate(); err != nil {
		return "", fmt.Errorf("failed to generate fernet key: %w", err)
	}
	return key.Encode(), nil
}

// Encrypt returns the fernet token for the given plaintext.
func (v *Vault) Encrypt(plaintext string) (string, error) {
	token, err := fernet.EncryptAndSign([]byte(plaintext), v.key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt secret: %w", err)
	}
	return string(token), nil
}

// Decrypt verifies and decrypts a fernet token. Tokens do not expire;
// the stored key is valid until replaced.
func (v *Vault) Decrypt(token string) (string, error) {
	plaintext := fernet.VerifyAndDecrypt([]byte(token), 0, []*fernet.Key{v.key})
	if plaintext == nil {
		return "", fmt.Errorf("failed to verify secret token")
	}
	return string(plaintext), nil
}
