package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/cmgzone/notebookllm/internal/config"
	"github.com/cmgzone/notebookllm/internal/crypto"
	"github.com/cmgzone/notebookllm/internal/domain/apikey"
	"github.com/cmgzone/notebookllm/internal/store/postgres"
)

// rotate re-seals every stored key under a new secret, optionally moving
// them to the pbkdf2 scheme. All rows change or none do; the app keeps
// working against the old secret until the transaction commits.
func runRotate(ctx context.Context, cfg config.Cfg, args []string) {
	fs := flag.NewFlagSet("rotate", flag.ExitOnError)
	kdf := fs.String("kdf", string(crypto.SchemeSHA256), "Target key derivation: sha256 (app-compatible) or pbkdf2")
	iterations := fs.Int("iterations", 0, "PBKDF2 iterations; 0 uses PBKDF2_ITERATIONS")
	if err := fs.Parse(args); err != nil {
		fatal(err)
	}
	if !cfg.HasDB() {
		fatal(errDBRequired)
	}
	scheme, err := crypto.ParseScheme(*kdf)
	if err != nil {
		fatal(err)
	}

	current, err := getPassphrase(cfg, "Enter current shared secret: ")
	if err != nil {
		fatal(err)
	}
	defer crypto.ClearBytes(current)

	next, err := readPasswordConfirm("Enter new shared secret: ", "Confirm new shared secret: ")
	if err != nil {
		fatal(err)
	}
	defer crypto.ClearBytes(next)
	if len(next) == 0 {
		fatal(errors.New("new secret must not be empty"))
	}

	iters := *iterations
	if iters <= 0 {
		iters = cfg.Secret.Iterations
	}
	enc, err := crypto.NewEncryptor(next, scheme, iters)
	if err != nil {
		fatal(err)
	}
	defer enc.Destroy()

	pool := postgres.MustOpen(ctx, cfg.DB.DSN)
	defer pool.Close()

	n, err := postgres.NewRepo(pool).RotateAPIKeys(ctx, func(k *apikey.APIKey) error {
		plaintext, err := k.Open(current)
		if err != nil {
			return err
		}
		return k.Seal(plaintext, enc)
	})
	if err != nil {
		fatal(err)
	}

	log.Info().Int("keys", n).Str("kdf", string(scheme)).Msg("rotation committed")
	fmt.Printf("Rotated %d key(s). Update %s everywhere the app runs.\n", n, secretEnvVar)
}
