// Package credential handles the raw secret files the protocol depends on:
// the shared-key init files provisioned once for each endpoint, and the
// per-account card files holding the card secret.
package credential

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/atmnet/internal/common"
	"github.com/dmitrijs2005/atmnet/internal/cryptox"
)

// LoadKey reads the shared symmetric key from an endpoint init file.
// The file must hold at least cryptox.KeySize bytes; only the leading
// KeySize bytes are used.
func LoadKey(path string) ([]byte, error) {
	return loadSecret(path, cryptox.KeySize)
}

// CardPath returns the card file path for user inside dir.
func CardPath(dir, user string) string {
	return filepath.Join(dir, user+".card")
}

// LoadCard reads a user's card secret from <dir>/<user>.card.
func LoadCard(dir, user string) ([]byte, error) {
	return loadSecret(CardPath(dir, user), cryptox.CardSecretSize)
}

// WriteCard writes a freshly generated card secret to <dir>/<user>.card.
// A partial write leaves no file behind.
func WriteCard(dir, user string, secret []byte) error {
	if len(secret) != cryptox.CardSecretSize {
		return fmt.Errorf("%w: card secret must be %d bytes, got %d",
			common.ErrCredentialAccess, cryptox.CardSecretSize, len(secret))
	}

	path := CardPath(dir, user)
	if err := os.WriteFile(path, secret, 0o600); err != nil {
		os.Remove(path)
		return fmt.Errorf("%w: write %s: %v", common.ErrCredentialAccess, path, err)
	}
	return nil
}

func loadSecret(path string, size int) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", common.ErrCredentialAccess, path, err)
	}
	if len(b) < size {
		return nil, fmt.Errorf("%w: %s holds %d bytes, need %d", common.ErrCredentialAccess, path, len(b), size)
	}
	return b[:size], nil
}
