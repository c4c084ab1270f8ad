package config

import (
	"os"
	"testing"

	"github.com/cmgzone/notebookllm/internal/crypto"
)

func unsetenv(t *testing.T, key string) {
	t.Helper()
	if v, ok := os.LookupEnv(key); ok {
		os.Unsetenv(key)
		t.Cleanup(func() { os.Setenv(key, v) })
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://u:p@localhost:5432/notebookllm")
	t.Setenv("NOTEBOOKLLM_SECRET", "notebook_llm_global_secret_key_2024")
	t.Setenv("PBKDF2_ITERATIONS", "50000")

	cfg := Load()
	if cfg.DB.DSN != "postgres://u:p@localhost:5432/notebookllm" {
		t.Errorf("DSN = %q", cfg.DB.DSN)
	}
	if cfg.Secret.Passphrase != "notebook_llm_global_secret_key_2024" {
		t.Errorf("Passphrase = %q", cfg.Secret.Passphrase)
	}
	if cfg.Secret.Iterations != 50000 {
		t.Errorf("Iterations = %d, want 50000", cfg.Secret.Iterations)
	}
	if !cfg.HasDB() {
		t.Error("HasDB() = false with DSN set")
	}
}

func TestLoadDefaults(t *testing.T) {
	unsetenv(t, "DB_DSN")
	unsetenv(t, "NOTEBOOKLLM_SECRET")
	unsetenv(t, "PBKDF2_ITERATIONS")

	cfg := Load()
	if cfg.DB.DSN != "" {
		t.Errorf("DSN = %q, want empty", cfg.DB.DSN)
	}
	if cfg.Secret.Passphrase != "" {
		t.Errorf("Passphrase = %q, want empty", cfg.Secret.Passphrase)
	}
	if cfg.Secret.Iterations != crypto.DefaultIterations {
		t.Errorf("Iterations = %d, want default %d", cfg.Secret.Iterations, crypto.DefaultIterations)
	}
	if cfg.HasDB() {
		t.Error("HasDB() = true with no DSN")
	}
}

func TestHasDBIgnoresWhitespace(t *testing.T) {
	t.Setenv("DB_DSN", "   ")
	if Load().HasDB() {
		t.Error("HasDB() = true for whitespace-only DSN")
	}
}
