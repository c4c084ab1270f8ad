package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cmgzone/notebookllm/internal/config"
)

const version = "1.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := config.Load()

	switch os.Args[1] {
	case "encrypt":
		runEncrypt(ctx, cfg, os.Args[2:])
	case "decrypt":
		runDecrypt(ctx, cfg, os.Args[2:])
	case "push":
		runPush(ctx, cfg, os.Args[2:])
	case "list":
		runList(ctx, cfg, os.Args[2:])
	case "rotate":
		runRotate(ctx, cfg, os.Args[2:])
	case "version", "-v", "--version":
		fmt.Printf("keyvault version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	usage := `keyvault - encrypted API keys for the NotebookLLM database

USAGE:
    keyvault <command> [options] [value]

COMMANDS:
    encrypt    Encrypt a value and print the SQL to store it
    decrypt    Decrypt a bundle, or the value stored for a service
    push       Encrypt a value and store it directly
    list       Show stored keys (never the ciphertext)
    rotate     Re-encrypt every stored key under a new secret
    version    Show version information
    help       Show this help message

ENVIRONMENT:
    NOTEBOOKLLM_SECRET   Shared secret (prompted for when unset)
    DB_DSN               Postgres DSN; required by push, list, rotate
    PBKDF2_ITERATIONS    Work factor for -kdf pbkdf2 (default 210000)

EXAMPLES:
    # Print SQL for the Neon console (same output as the old script)
    keyvault encrypt -service openrouter 'sk-or-v1-...'

    # Pipe the value in instead of leaving it in shell history
    pbpaste | keyvault push -service openrouter

    # Check what the app will see
    keyvault list

    # Recover a stored value
    keyvault decrypt -service openrouter

    # Move every key to a new secret and a slow KDF
    keyvault rotate -kdf pbkdf2

`
	fmt.Fprint(os.Stderr, usage)
}
