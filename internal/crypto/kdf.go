package crypto

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the PBKDF2 salt length in bytes.
	SaltSize = 16
	// DefaultIterations is the PBKDF2-SHA256 work factor (OWASP minimum).
	DefaultIterations = 210000
)

// Scheme selects how the cipher key is derived from the shared passphrase.
type Scheme string

const (
	// SchemeSHA256 is the legacy derivation: one unsalted SHA-256 pass over
	// the passphrase. Weak as a KDF, but it is what the deployed app uses
	// to decrypt; changing it silently would orphan every stored value.
	SchemeSHA256 Scheme = "sha256"
	// SchemePBKDF2 derives the key with PBKDF2-SHA256 and a random salt.
	// Opt-in only; moving a live table over requires `keyvault rotate`.
	SchemePBKDF2 Scheme = "pbkdf2"
)

// ParseScheme maps a -kdf flag value to a Scheme.
func ParseScheme(s string) (Scheme, error) {
	switch Scheme(strings.ToLower(strings.TrimSpace(s))) {
	case SchemeSHA256:
		return SchemeSHA256, nil
	case SchemePBKDF2:
		return SchemePBKDF2, nil
	default:
		return "", fmt.Errorf("unknown KDF scheme %q (want sha256 or pbkdf2)", s)
	}
}

// DeriveKey derives the legacy AES key: SHA-256(passphrase). Deterministic,
// so the application holding the same passphrase derives the same key.
func DeriveKey(passphrase []byte) []byte {
	sum := sha256.Sum256(passphrase)
	return sum[:]
}

// DeriveKeyPBKDF2 derives an AES key with PBKDF2-SHA256.
func DeriveKeyPBKDF2(passphrase, salt []byte, iterations int) []byte {
	return pbkdf2.Key(passphrase, salt, iterations, KeySize, sha256.New)
}
