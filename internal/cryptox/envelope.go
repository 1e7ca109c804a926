// Package cryptox implements the symmetric envelope protecting every
// ATM–Bank datagram and the login-proof derivation.
//
// Wire envelope: [IV (16)] [AES-256-CBC ciphertext, PKCS#7 padded] [HMAC-SHA256 (32)].
// The tag is computed over IV||ciphertext with the shared key, after
// encryption (encrypt-then-MAC). The same 32-byte key serves both roles;
// that reproduces the deployed format and is deliberate, see DESIGN.md.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"fmt"

	"github.com/dmitrijs2005/atmnet/internal/common"
)

const (
	// KeySize is the shared symmetric key width (AES-256).
	KeySize = 32

	// IVSize is the CBC initialization vector width, one AES block.
	IVSize = aes.BlockSize

	// TagSize is the HMAC-SHA256 authentication tag width.
	TagSize = sha256.Size
)

// minEnvelopeSize is an IV, at least one ciphertext block, and the tag.
const minEnvelopeSize = IVSize + aes.BlockSize + TagSize

// Seal encrypts plaintext under key and returns the complete wire envelope
// IV||ciphertext||tag. A fresh random IV is generated on every call.
func Seal(key, plaintext []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("seal: key must be %d bytes, got %d", KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("seal: %w", err)
	}

	iv, err := RandomBytes(IVSize)
	if err != nil {
		return nil, fmt.Errorf("seal: %w", err)
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)

	env := make([]byte, IVSize+len(padded)+TagSize)
	copy(env, iv)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(env[IVSize:IVSize+len(padded)], padded)

	mac := hmac.New(sha256.New, key)
	mac.Write(env[:IVSize+len(padded)])
	mac.Sum(env[:IVSize+len(padded)])

	return env, nil
}

// Open verifies and decrypts an envelope produced by Seal. The tag is
// recomputed over the received IV||ciphertext and compared in constant time
// before any decryption is attempted; a mismatch, a truncated or misaligned
// envelope, bad padding, or a plaintext longer than maxPlaintext all yield
// common.ErrAuthFailed.
func Open(key, env []byte, maxPlaintext int) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("open: key must be %d bytes, got %d", KeySize, len(key))
	}
	if len(env) < minEnvelopeSize {
		return nil, fmt.Errorf("%w: envelope of %d bytes is truncated", common.ErrAuthFailed, len(env))
	}

	iv := env[:IVSize]
	ct := env[IVSize : len(env)-TagSize]
	tag := env[len(env)-TagSize:]

	if len(ct)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext not block-aligned", common.ErrAuthFailed)
	}

	mac := hmac.New(sha256.New, key)
	mac.Write(env[:len(env)-TagSize])
	if !hmac.Equal(mac.Sum(nil), tag) {
		return nil, fmt.Errorf("%w: tag mismatch", common.ErrAuthFailed)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	padded := make([]byte, len(ct))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ct)

	plaintext, err := pkcs7Unpad(padded, aes.BlockSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrAuthFailed, err)
	}
	if len(plaintext) > maxPlaintext {
		return nil, fmt.Errorf("%w: plaintext of %d bytes exceeds limit %d", common.ErrAuthFailed, len(plaintext), maxPlaintext)
	}

	return plaintext, nil
}

func pkcs7Pad(b []byte, blockSize int) []byte {
	n := blockSize - len(b)%blockSize
	padded := make([]byte, len(b)+n)
	copy(padded, b)
	for i := len(b); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

func pkcs7Unpad(b []byte, blockSize int) ([]byte, error) {
	if len(b) == 0 || len(b)%blockSize != 0 {
		return nil, fmt.Errorf("invalid padded length %d", len(b))
	}
	n := int(b[len(b)-1])
	if n == 0 || n > blockSize || n > len(b) {
		return nil, fmt.Errorf("invalid padding byte %d", n)
	}
	for _, v := range b[len(b)-n:] {
		if int(v) != n {
			return nil, fmt.Errorf("inconsistent padding")
		}
	}
	return b[:len(b)-n], nil
}
