package apikey

import (
	"strings"
	"testing"

	"github.com/cmgzone/notebookllm/internal/crypto"
)

func TestNewValidation(t *testing.T) {
	valid := []string{"openrouter", "openai", "s3", "gemini-pro", "azure_openai", "svc2"}
	for _, name := range valid {
		if _, err := New(name, ""); err != nil {
			t.Errorf("New(%q) failed: %v", name, err)
		}
	}

	invalid := []string{"", "   ", "OpenRouter", "open router", "-openai", "_svc", "svc!", "résumé"}
	for _, name := range invalid {
		if _, err := New(name, ""); err == nil {
			t.Errorf("New(%q) succeeded, want error", name)
		}
	}
}

func TestNewTrimsAndDefaults(t *testing.T) {
	k, err := New("  openrouter  ", "")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if k.ServiceName != "openrouter" {
		t.Errorf("ServiceName = %q, want %q", k.ServiceName, "openrouter")
	}
	if k.Description != "openrouter API key" {
		t.Errorf("Description = %q, want default", k.Description)
	}

	k, err = New("openrouter", "OpenRouter API Key")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if k.Description != "OpenRouter API Key" {
		t.Errorf("explicit description overridden: %q", k.Description)
	}
}

func TestSealOpen(t *testing.T) {
	enc, err := crypto.NewEncryptor([]byte("notebook_llm_global_secret_key_2024"), crypto.SchemeSHA256, 0)
	if err != nil {
		t.Fatalf("NewEncryptor failed: %v", err)
	}
	defer enc.Destroy()

	k, err := New("openrouter", "")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := k.Seal("sk-or-v1-test", enc); err != nil {
		t.Fatalf("Seal failed: %v", err)
	}
	if k.EncryptedValue == "" || strings.Contains(k.EncryptedValue, "sk-or-v1-test") {
		t.Fatalf("value not sealed: %q", k.EncryptedValue)
	}

	got, err := k.Open([]byte("notebook_llm_global_secret_key_2024"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if got != "sk-or-v1-test" {
		t.Errorf("Open = %q, want %q", got, "sk-or-v1-test")
	}
}

func TestSealReplacesBundle(t *testing.T) {
	enc, err := crypto.NewEncryptor([]byte("secret"), crypto.SchemeSHA256, 0)
	if err != nil {
		t.Fatalf("NewEncryptor failed: %v", err)
	}
	defer enc.Destroy()

	k, err := New("svc", "")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := k.Seal("v1", enc); err != nil {
		t.Fatalf("Seal failed: %v", err)
	}
	first := k.EncryptedValue
	if err := k.Seal("v1", enc); err != nil {
		t.Fatalf("second Seal failed: %v", err)
	}
	if k.EncryptedValue == first {
		t.Error("re-sealing reused the previous bundle")
	}
}

func TestOpenFailures(t *testing.T) {
	k, err := New("svc", "")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := k.Open([]byte("secret")); err == nil {
		t.Error("Open succeeded with no sealed value")
	}

	enc, err := crypto.NewEncryptor([]byte("secret"), crypto.SchemeSHA256, 0)
	if err != nil {
		t.Fatalf("NewEncryptor failed: %v", err)
	}
	defer enc.Destroy()
	if err := k.Seal("v1", enc); err != nil {
		t.Fatalf("Seal failed: %v", err)
	}
	if got, err := k.Open([]byte("wrong")); err == nil && got == "v1" {
		t.Error("Open recovered the plaintext under a wrong passphrase")
	}
}
