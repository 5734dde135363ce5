package commands

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/dyluth/fuse/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

var (
	configPath      string
	storageOverride string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fuse",
	Short: "fuse - companion tracker for a cooperative card game",
	Long: `fuse keeps the log of discards, plays and hints of a game and derives
what is still possible: which card types are exhausted, which physical
cards are gone, and which types each hand position can no longer hold.

The log is stored in a YAML file by default, or in Redis or Postgres as
configured in fuse.yml.`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadDotEnv()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// If no subcommand is specified, show help
		return cmd.Help()
	},
	// Enable strict flag parsing - unknown flags will cause an error
	FParseErrWhitelist: cobra.FParseErrWhitelist{},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	// Silence Cobra's default error and usage printing
	// We print formatted colored errors directly in the printer package
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

// loadDotEnv reads FUSE_* overrides from a .env file in the working
// directory. A missing file is not an error.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "f", config.FileName, "Path to the game configuration file")
	rootCmd.PersistentFlags().StringVar(&storageOverride, "storage", "", "Override storage.backend (file, redis, postgres or memory)")
}
