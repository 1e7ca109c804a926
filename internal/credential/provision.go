package credential

import (
	"fmt"
	"os"

	"github.com/dmitrijs2005/atmnet/internal/common"
	"github.com/dmitrijs2005/atmnet/internal/cryptox"
)

// Provision generates a fresh shared key and writes identical copies to
// <base>.atm and <base>.bank. It refuses to overwrite: if either file
// already exists the error wraps common.ErrAlreadyProvisioned and nothing
// is written. If the second write fails the first file is removed so a
// retry starts clean.
func Provision(base string) error {
	atmPath := base + ".atm"
	bankPath := base + ".bank"

	if fileExists(atmPath) || fileExists(bankPath) {
		return fmt.Errorf("%w: %s or %s", common.ErrAlreadyProvisioned, atmPath, bankPath)
	}

	key, err := cryptox.RandomBytes(cryptox.KeySize)
	if err != nil {
		return fmt.Errorf("provision: %w", err)
	}
	defer common.WipeByteArray(key)

	if err := os.WriteFile(atmPath, key, 0o600); err != nil {
		return fmt.Errorf("provision: write %s: %w", atmPath, err)
	}
	if err := os.WriteFile(bankPath, key, 0o600); err != nil {
		os.Remove(atmPath)
		return fmt.Errorf("provision: write %s: %w", bankPath, err)
	}

	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
