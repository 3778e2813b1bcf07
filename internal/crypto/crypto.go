// Package crypto handles the symmetric encryption of proxy credential
// strings. Key derivation parameters are a cross-system contract shared with
// the companion encryption-side implementations; changing any of them breaks
// compatibility with already-issued ciphertexts.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Must match the salt used by the encryption side.
const salt = "cloudflare-workers-salt"

const (
	iterations = 100000
	keyLength  = 32
	nonceSize  = 12
)

// ErrDecryptionFailed is returned for any undecryptable input: malformed
// base64, truncated payload, or authentication failure. The underlying cause
// is deliberately not wrapped so that neither the secret nor partial
// plaintext can leak through error chains.
var ErrDecryptionFailed = errors.New("failed to decrypt")

// DeriveKey derives a 256-bit key from the shared secret.
func DeriveKey(secret string) ([]byte, error) {
	if secret == "" {
		return nil, errors.New("secret key cannot be empty")
	}
	return pbkdf2.Key([]byte(secret), []byte(salt), iterations, keyLength, sha256.New), nil
}

// Encrypt seals text with AES-GCM under a key derived from secret and
// returns base64(nonce || ciphertext). Empty or whitespace-only text yields
// the empty string, the "no proxy requested" sentinel.
func Encrypt(text string, secret string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	aead, err := newAEAD(secret)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := aead.Seal(nonce, nonce, []byte(text), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. Empty input returns an empty string and no
// error: it signals that no proxy was requested. Any malformed or tampered
// input returns ErrDecryptionFailed.
func Decrypt(encrypted string, secret string) (string, error) {
	if encrypted == "" {
		return "", nil
	}

	aead, err := newAEAD(secret)
	if err != nil {
		return "", err
	}

	raw, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	if len(raw) < nonceSize {
		return "", ErrDecryptionFailed
	}

	nonce, ciphertext := raw[:nonceSize], raw[nonceSize:]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}

	return string(plaintext), nil
}

func newAEAD(secret string) (cipher.AEAD, error) {
	key, err := DeriveKey(secret)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	return cipher.NewGCM(block)
}
