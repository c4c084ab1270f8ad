package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/cmgzone/notebookllm/internal/config"
	"github.com/cmgzone/notebookllm/internal/crypto"
	"github.com/cmgzone/notebookllm/internal/domain/apikey"
)

const secretEnvVar = "NOTEBOOKLLM_SECRET"

var errDBRequired = errors.New("DB_DSN is required for this command")

// getPassphrase resolves the shared secret: environment first, then an
// interactive prompt. The caller clears the returned buffer.
func getPassphrase(cfg config.Cfg, prompt string) ([]byte, error) {
	if cfg.Secret.Passphrase != "" {
		return []byte(cfg.Secret.Passphrase), nil
	}
	return readPassword(prompt)
}

// readPassword prompts on stderr and reads without echo. When stdin is a
// pipe (the value being piped in) it falls back to /dev/tty.
func readPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)

	fd := int(syscall.Stdin)
	if !term.IsTerminal(fd) {
		tty, err := os.Open("/dev/tty")
		if err != nil {
			fmt.Fprintln(os.Stderr)
			return nil, fmt.Errorf("stdin is not a terminal and /dev/tty is unavailable; set %s", secretEnvVar)
		}
		defer tty.Close()
		fd = int(tty.Fd())
	}

	passphrase, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret: %w", err)
	}
	return passphrase, nil
}

func readPasswordConfirm(prompt, confirmPrompt string) ([]byte, error) {
	first, err := readPassword(prompt)
	if err != nil {
		return nil, err
	}
	confirm, err := readPassword(confirmPrompt)
	if err != nil {
		crypto.ClearBytes(first)
		return nil, err
	}
	defer crypto.ClearBytes(confirm)

	if !crypto.ConstantTimeCompare(first, confirm) {
		crypto.ClearBytes(first)
		return nil, errors.New("secrets do not match")
	}
	return first, nil
}

// readValue resolves the plaintext to encrypt: positional argument, piped
// stdin, or hidden prompt, in that order.
func readValue(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if !term.IsTerminal(int(syscall.Stdin)) {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read value from stdin: %w", err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}
	value, err := readPassword("Enter value to encrypt: ")
	if err != nil {
		return "", err
	}
	defer crypto.ClearBytes(value)
	return string(value), nil
}

// sealFlags are the options encrypt and push share.
type sealFlags struct {
	service     *string
	description *string
	kdf         *string
	iterations  *int
}

func addSealFlags(fs *flag.FlagSet) sealFlags {
	return sealFlags{
		service:     fs.String("service", "", "Service name the app looks up (api_keys primary key)"),
		description: fs.String("description", "", "Row description; defaults to '<service> API key'"),
		kdf:         fs.String("kdf", string(crypto.SchemeSHA256), "Key derivation: sha256 (app-compatible) or pbkdf2"),
		iterations:  fs.Int("iterations", 0, "PBKDF2 iterations; 0 uses PBKDF2_ITERATIONS"),
	}
}

// sealValue runs the pipeline behind encrypt and push: resolve the secret
// and the plaintext, then seal one APIKey.
func sealValue(cfg config.Cfg, service, description, kdf string, iterations int, args []string) (*apikey.APIKey, crypto.Scheme, error) {
	k, err := apikey.New(service, description)
	if err != nil {
		return nil, "", err
	}
	scheme, err := crypto.ParseScheme(kdf)
	if err != nil {
		return nil, "", err
	}

	passphrase, err := getPassphrase(cfg, "Enter shared secret: ")
	if err != nil {
		return nil, "", err
	}
	defer crypto.ClearBytes(passphrase)

	value, err := readValue(args)
	if err != nil {
		return nil, "", err
	}

	if iterations <= 0 {
		iterations = cfg.Secret.Iterations
	}
	enc, err := crypto.NewEncryptor(passphrase, scheme, iterations)
	if err != nil {
		return nil, "", err
	}
	defer enc.Destroy()

	if err := k.Seal(value, enc); err != nil {
		return nil, "", err
	}
	return k, scheme, nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	os.Exit(1)
}
