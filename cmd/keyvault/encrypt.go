package main

import (
	"context"
	"flag"
	"os"

	"github.com/cmgzone/notebookllm/internal/config"
	"github.com/cmgzone/notebookllm/internal/sqlgen"
)

// encrypt is the original one-shot flow: seal a value and print the SQL to
// paste into the Neon console. It never touches the database itself.
func runEncrypt(_ context.Context, cfg config.Cfg, args []string) {
	fs := flag.NewFlagSet("encrypt", flag.ExitOnError)
	f := addSealFlags(fs)
	if err := fs.Parse(args); err != nil {
		fatal(err)
	}

	k, _, err := sealValue(cfg, *f.service, *f.description, *f.kdf, *f.iterations, fs.Args())
	if err != nil {
		fatal(err)
	}

	sqlgen.WriteReport(os.Stdout, k.ServiceName, k.EncryptedValue, k.Description)
}
