package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/cardz/internal/app"
	"github.com/abhisek/cardz/internal/store"
)

// runApp builds dependencies and launches the TUI. The local history store is
// optional: if it can't be opened the app still runs, it just records
// nothing.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := app.Options{
		Client:     newClient(cfg),
		BatchLimit: cfg.Session.BatchLimit,
	}

	dbPath, err := resolveDBPath(cmd)
	if err == nil {
		var st *store.Store
		st, err = store.Open(dbPath)
		if err == nil {
			defer st.Close()
			opts.EventRepo = st.EventRepo()
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Local history unavailable:", err)
	}

	return app.Run(opts)
}
