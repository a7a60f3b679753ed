package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("cardz", version)

		// Best effort. An unreachable backend or a dev build skips the
		// compatibility check.
		if !semver.IsValid("v" + version) {
			return
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return
		}
		info, err := newClient(cfg).ServerInfo(cmd.Context())
		if err != nil {
			return
		}
		fmt.Println("server", info.Version)
		if info.MinClientVersion != "" &&
			semver.Compare("v"+version, "v"+info.MinClientVersion) < 0 {
			fmt.Fprintf(os.Stderr,
				"Warning: the server requires client %s or newer; please upgrade.\n",
				info.MinClientVersion)
		}
	},
}
