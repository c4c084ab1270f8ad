package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/cmgzone/notebookllm/internal/config"
	"github.com/cmgzone/notebookllm/internal/crypto"
	"github.com/cmgzone/notebookllm/internal/store/postgres"
)

// decrypt recovers a plaintext from a bundle pasted on the command line, or
// with -service from the row stored in the database.
func runDecrypt(ctx context.Context, cfg config.Cfg, args []string) {
	fs := flag.NewFlagSet("decrypt", flag.ExitOnError)
	service := fs.String("service", "", "Fetch the bundle stored for this service")
	if err := fs.Parse(args); err != nil {
		fatal(err)
	}

	var encoded string
	switch {
	case *service != "":
		if !cfg.HasDB() {
			fatal(errDBRequired)
		}
		pool := postgres.MustOpen(ctx, cfg.DB.DSN)
		defer pool.Close()
		k, err := postgres.NewRepo(pool).GetAPIKey(ctx, *service)
		if err != nil {
			fatal(err)
		}
		encoded = k.EncryptedValue
	case fs.NArg() > 0:
		encoded = fs.Arg(0)
	default:
		fatal(errors.New("nothing to decrypt: pass a bundle or -service"))
	}

	passphrase, err := getPassphrase(cfg, "Enter shared secret: ")
	if err != nil {
		fatal(err)
	}
	defer crypto.ClearBytes(passphrase)

	plaintext, err := crypto.DecryptWithPassphrase(passphrase, encoded)
	if err != nil {
		fatal(err)
	}
	fmt.Println(plaintext)
}
