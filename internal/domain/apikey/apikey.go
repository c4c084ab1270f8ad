package apikey

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/cmgzone/notebookllm/internal/crypto"
)

// APIKey is one row of the api_keys table: a service's secret encrypted
// under the shared passphrase. The table lives in the NotebookLLM database;
// service_name is its conflict key.
type APIKey struct {
	ServiceName    string
	EncryptedValue string
	Description    string
	UpdatedAt      time.Time
}

// Service names end up inlined in emitted SQL and act as lookup keys in the
// app, so keep them to a boring character set.
var serviceNameRe = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// New validates identity fields and returns a key with no value sealed yet.
// An empty description defaults to "<service> API key".
func New(service, description string) (*APIKey, error) {
	service = strings.TrimSpace(service)
	if service == "" {
		return nil, fmt.Errorf("service name is required")
	}
	if !serviceNameRe.MatchString(service) {
		return nil, fmt.Errorf("invalid service name %q: use lowercase letters, digits, '-' and '_'", service)
	}
	if strings.TrimSpace(description) == "" {
		description = fmt.Sprintf("%s API key", service)
	}
	return &APIKey{ServiceName: service, Description: description}, nil
}

// Seal encrypts plaintext and replaces EncryptedValue wholesale. The bundle
// is immutable once produced; re-sealing always builds a fresh one.
func (k *APIKey) Seal(plaintext string, enc *crypto.Encryptor) error {
	encoded, err := enc.Encrypt(plaintext)
	if err != nil {
		return fmt.Errorf("failed to encrypt value for %s: %w", k.ServiceName, err)
	}
	k.EncryptedValue = encoded
	return nil
}

// Open decrypts EncryptedValue with the shared passphrase, whichever KDF
// scheme sealed it.
func (k *APIKey) Open(passphrase []byte) (string, error) {
	if k.EncryptedValue == "" {
		return "", fmt.Errorf("no encrypted value stored for %s", k.ServiceName)
	}
	plaintext, err := crypto.DecryptWithPassphrase(passphrase, k.EncryptedValue)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt value for %s: %w", k.ServiceName, err)
	}
	return plaintext, nil
}
