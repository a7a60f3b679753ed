package cmd

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/abhisek/cardz/internal/api"
	"github.com/abhisek/cardz/internal/config"
	"github.com/abhisek/cardz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "cardz",
	Short: "Terminal client for spaced-repetition flashcards",
	Long:  "Cardz — terminal client for a spaced-repetition flashcard backend. Review due cards, practice freely, edit and generate cards.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("api-url", "", "Backend base URL (overrides CARDZ_API_URL)")
	rootCmd.PersistentFlags().String("token", "", "Bearer token (overrides CARDZ_API_TOKEN)")
	rootCmd.PersistentFlags().String("db", "", "Path to the local history database (overrides CARDZ_DB)")

	rootCmd.AddCommand(decksCmd)
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment configuration, then applies flag
// overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if u, _ := cmd.Flags().GetString("api-url"); u != "" {
		cfg.API.BaseURL = u
	}
	if t, _ := cmd.Flags().GetString("token"); t != "" {
		cfg.API.Token = t
	}
	return cfg, nil
}

// newClient builds the API client from resolved configuration.
func newClient(cfg *config.Config) *api.Client {
	opts := []api.ClientOption{
		api.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
	}
	if cfg.API.Token != "" {
		opts = append(opts, api.WithToken(cfg.API.Token))
	}
	return api.NewClient(cfg.API.BaseURL, opts...)
}

// resolveDBPath returns the history database path using the --db flag
// (highest priority), then CARDZ_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
