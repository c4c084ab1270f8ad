// Package crypto implements the encryption scheme shared with the
// NotebookLLM application: AES-256-CBC with PKCS#7 padding, the cipher key
// derived from a shared passphrase. Stored values are IV||ciphertext
// bundles; the legacy encoding is plain base64 and must stay bit-compatible
// with values already in the api_keys table.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

const (
	// KeySize is the AES-256 key size produced by every KDF scheme.
	KeySize = 32
	// BlockSize is the AES block size and the IV length carried at the
	// front of every bundle.
	BlockSize = aes.BlockSize
)

var (
	ErrCiphertextShort     = errors.New("ciphertext too short")
	ErrCiphertextAlignment = errors.New("ciphertext not block aligned")
	ErrInvalidPadding      = errors.New("invalid padding")
	ErrInvalidBundle       = errors.New("invalid encrypted bundle")
)

// pad appends PKCS#7 padding. Block-aligned input gains a full extra block
// so the padding length is always recoverable.
func pad(plaintext []byte) []byte {
	n := BlockSize - len(plaintext)%BlockSize
	padded := make([]byte, len(plaintext)+n)
	copy(padded, plaintext)
	for i := len(plaintext); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

// unpad strips PKCS#7 padding, verifying every padding byte.
func unpad(padded []byte) ([]byte, error) {
	if len(padded) == 0 || len(padded)%BlockSize != 0 {
		return nil, ErrInvalidPadding
	}
	n := int(padded[len(padded)-1])
	if n < 1 || n > BlockSize {
		return nil, ErrInvalidPadding
	}
	for _, b := range padded[len(padded)-n:] {
		if int(b) != n {
			return nil, ErrInvalidPadding
		}
	}
	return padded[:len(padded)-n], nil
}

// Encrypt encrypts plaintext with AES-256-CBC under key and returns the raw
// bundle IV || ciphertext. The IV is fresh for every call; it is not secret
// and travels with the ciphertext because decryption needs it.
func Encrypt(key, plaintext []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("encryption key must be %d bytes", KeySize)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	iv := make([]byte, BlockSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, fmt.Errorf("failed to generate IV: %w", err)
	}

	padded := pad(plaintext)
	bundle := make([]byte, BlockSize+len(padded))
	copy(bundle, iv)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(bundle[BlockSize:], padded)
	return bundle, nil
}

// Decrypt reverses Encrypt. CBC+PKCS#7 carries no authentication tag: a
// wrong key almost always surfaces as ErrInvalidPadding, never as a clean
// "wrong key" signal.
func Decrypt(key, bundle []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("decryption key must be %d bytes", KeySize)
	}
	if len(bundle) < 2*BlockSize {
		return nil, ErrCiphertextShort
	}
	iv, ciphertext := bundle[:BlockSize], bundle[BlockSize:]
	if len(ciphertext)%BlockSize != 0 {
		return nil, ErrCiphertextAlignment
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)
	return unpad(padded)
}

// EncryptString encrypts plaintext and returns the base64 form stored in
// api_keys.encrypted_value (legacy encoding, no scheme prefix).
func EncryptString(key []byte, plaintext string) (string, error) {
	bundle, err := Encrypt(key, []byte(plaintext))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(bundle), nil
}

// DecryptString decrypts a base64 bundle produced by EncryptString.
func DecryptString(key []byte, encoded string) (string, error) {
	bundle, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBundle, err)
	}
	plaintext, err := Decrypt(key, bundle)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// GenerateRandom returns n cryptographically random bytes.
func GenerateRandom(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return b, nil
}

// ClearBytes zeroes a byte slice holding key material.
func ClearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ConstantTimeCompare reports whether a and b are equal without leaking
// where they differ.
func ConstantTimeCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
