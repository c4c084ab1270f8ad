package crypto

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// pbkdf2 bundles are encoded as pbkdf2$<iterations>$<salt>$<iv||ct> with
// base64 fields. Legacy bundles are bare base64 and can never collide with
// this form ('$' is not in the base64 alphabet).
const (
	pbkdf2Prefix = "pbkdf2"
	bundleSep    = "$"
)

// Encryptor seals and opens api_keys values under a shared passphrase.
type Encryptor struct {
	passphrase []byte
	scheme     Scheme
	iterations int
}

// NewEncryptor creates an encryptor for the given scheme. The passphrase is
// copied, so the caller may clear its own buffer; call Destroy when done.
// iterations <= 0 selects DefaultIterations (pbkdf2 only).
func NewEncryptor(passphrase []byte, scheme Scheme, iterations int) (*Encryptor, error) {
	if len(passphrase) == 0 {
		return nil, fmt.Errorf("passphrase cannot be empty")
	}
	switch scheme {
	case SchemeSHA256, SchemePBKDF2:
	default:
		return nil, fmt.Errorf("unknown KDF scheme %q", scheme)
	}
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	p := make([]byte, len(passphrase))
	copy(p, passphrase)
	return &Encryptor{passphrase: p, scheme: scheme, iterations: iterations}, nil
}

// Scheme reports the scheme new encryptions will use.
func (e *Encryptor) Scheme() Scheme { return e.scheme }

// Encrypt encrypts plaintext into the stored encoding for the configured
// scheme. Two calls never produce the same output: the IV (and salt, for
// pbkdf2) is fresh every time.
func (e *Encryptor) Encrypt(plaintext string) (string, error) {
	switch e.scheme {
	case SchemePBKDF2:
		salt, err := GenerateRandom(SaltSize)
		if err != nil {
			return "", err
		}
		key := DeriveKeyPBKDF2(e.passphrase, salt, e.iterations)
		defer ClearBytes(key)
		bundle, err := Encrypt(key, []byte(plaintext))
		if err != nil {
			return "", err
		}
		return encodePBKDF2Bundle(e.iterations, salt, bundle), nil
	default:
		key := DeriveKey(e.passphrase)
		defer ClearBytes(key)
		return EncryptString(key, plaintext)
	}
}

// Decrypt opens a stored value regardless of which scheme produced it; the
// scheme is recovered from the encoded form itself.
func (e *Encryptor) Decrypt(encoded string) (string, error) {
	return DecryptWithPassphrase(e.passphrase, encoded)
}

// Destroy clears the retained passphrase.
func (e *Encryptor) Destroy() {
	ClearBytes(e.passphrase)
}

// DecryptWithPassphrase opens an encoded value produced under either
// scheme, deriving the key per the bundle's own encoding.
func DecryptWithPassphrase(passphrase []byte, encoded string) (string, error) {
	if strings.HasPrefix(encoded, pbkdf2Prefix+bundleSep) {
		iterations, salt, bundle, err := decodePBKDF2Bundle(encoded)
		if err != nil {
			return "", err
		}
		key := DeriveKeyPBKDF2(passphrase, salt, iterations)
		defer ClearBytes(key)
		plaintext, err := Decrypt(key, bundle)
		if err != nil {
			return "", err
		}
		return string(plaintext), nil
	}

	key := DeriveKey(passphrase)
	defer ClearBytes(key)
	return DecryptString(key, encoded)
}

func encodePBKDF2Bundle(iterations int, salt, bundle []byte) string {
	return strings.Join([]string{
		pbkdf2Prefix,
		strconv.Itoa(iterations),
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(bundle),
	}, bundleSep)
}

func decodePBKDF2Bundle(encoded string) (int, []byte, []byte, error) {
	parts := strings.Split(encoded, bundleSep)
	if len(parts) != 4 || parts[0] != pbkdf2Prefix {
		return 0, nil, nil, ErrInvalidBundle
	}
	iterations, err := strconv.Atoi(parts[1])
	if err != nil || iterations < 1 {
		return 0, nil, nil, ErrInvalidBundle
	}
	salt, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil || len(salt) != SaltSize {
		return 0, nil, nil, ErrInvalidBundle
	}
	bundle, err := base64.StdEncoding.DecodeString(parts[3])
	if err != nil {
		return 0, nil, nil, ErrInvalidBundle
	}
	return iterations, salt, bundle, nil
}
