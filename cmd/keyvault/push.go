package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/cmgzone/notebookllm/internal/config"
	"github.com/cmgzone/notebookllm/internal/store/postgres"
)

// push seals a value like encrypt but writes the row itself instead of
// printing SQL to run by hand.
func runPush(ctx context.Context, cfg config.Cfg, args []string) {
	fs := flag.NewFlagSet("push", flag.ExitOnError)
	f := addSealFlags(fs)
	if err := fs.Parse(args); err != nil {
		fatal(err)
	}
	if !cfg.HasDB() {
		fatal(errDBRequired)
	}

	k, scheme, err := sealValue(cfg, *f.service, *f.description, *f.kdf, *f.iterations, fs.Args())
	if err != nil {
		fatal(err)
	}

	pool := postgres.MustOpen(ctx, cfg.DB.DSN)
	defer pool.Close()

	if err := postgres.NewRepo(pool).UpsertAPIKey(ctx, k); err != nil {
		fatal(err)
	}
	fmt.Printf("Stored encrypted value for %s (kdf %s).\n", k.ServiceName, scheme)
}
