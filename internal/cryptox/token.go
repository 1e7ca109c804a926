package cryptox

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
)

// CardSecretSize is the width of the per-account card secret.
const CardSecretSize = 32

// AuthToken derives the login proof from a card secret and a PIN:
// HMAC-SHA256 keyed with the card secret over card_secret||pin. Binding the
// secret into both the key and the hashed data means knowledge of either the
// card or the PIN alone is insufficient to forge a token.
func AuthToken(cardSecret []byte, pin string) ([]byte, error) {
	if len(cardSecret) != CardSecretSize {
		return nil, fmt.Errorf("auth token: card secret must be %d bytes, got %d", CardSecretSize, len(cardSecret))
	}

	mac := hmac.New(sha256.New, cardSecret)
	mac.Write(cardSecret)
	mac.Write([]byte(pin))
	return mac.Sum(nil), nil
}

// VerifyAuthToken compares two tokens in constant time.
func VerifyAuthToken(expected, got []byte) bool {
	return hmac.Equal(expected, got)
}

// RandomBytes returns n cryptographically secure random bytes.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("random bytes: %w", err)
	}
	return b, nil
}
