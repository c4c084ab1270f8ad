package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/cmgzone/notebookllm/internal/config"
	"github.com/cmgzone/notebookllm/internal/store/postgres"
)

// list runs the verification query the old script told you to run by hand.
func runList(ctx context.Context, cfg config.Cfg, args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fatal(err)
	}
	if !cfg.HasDB() {
		fatal(errDBRequired)
	}

	pool := postgres.MustOpen(ctx, cfg.DB.DSN)
	defer pool.Close()

	keys, err := postgres.NewRepo(pool).ListAPIKeys(ctx)
	if err != nil {
		fatal(err)
	}
	if len(keys) == 0 {
		fmt.Println("No API keys stored.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SERVICE\tDESCRIPTION\tUPDATED")
	for _, k := range keys {
		fmt.Fprintf(w, "%s\t%s\t%s\n", k.ServiceName, k.Description, k.UpdatedAt.Format(time.DateTime))
	}
	w.Flush()
}
