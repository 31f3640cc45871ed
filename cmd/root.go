package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/triviaz/internal/config"
	"github.com/abhisek/triviaz/internal/logging"
	"github.com/abhisek/triviaz/internal/store"
)

const appName = "triviaz"

// cfg is loaded once per invocation by the root pre-run hook.
var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:          "triviaz",
	Short:        "Bible trivia quiz in the terminal",
	Long:         "Triviaz — a terminal Bible trivia quiz that avoids repeating recently used questions.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides TRIVIAZ_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads .env and config, then puts a logger on the command context.
func setup(cmd *cobra.Command) error {
	if os.Getenv(config.EnvPrefix+"ENV") != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "warning: could not load .env file: %v\n", err)
		}
	}

	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = os.Getenv(config.EnvPrefix + "CONFIG")
	}
	loaded, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		loaded.LogLevel = lvl
	}
	cfg = loaded

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.New(appName, cfg.Env, cfg.LogLevel)
	cmd.SetContext(logging.IntoContext(ctx, logger))
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then TRIVIAZ_DB or the config file, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore resolves the database path and opens it.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	log := logging.FromContext(cmd.Context())
	log.Debug().Str("path", dbPath).Msg("opened database")
	return s, nil
}
