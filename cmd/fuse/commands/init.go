package commands

import (
	"fmt"
	"path/filepath"

	"github.com/dyluth/fuse/internal/config"
	"github.com/dyluth/fuse/internal/printer"
	"github.com/dyluth/fuse/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	forceInit bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Start a new game",
	Long: `Start a new game with default configuration.

Creates:
  • fuse.yml - Game configuration with a fresh game id

Use --force to start over (WARNING: removes the existing configuration and
its file log).`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&forceInit, "force", false, "Force reinitialization (removes existing fuse.yml and its log)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if filepath.Base(configPath) != config.FileName {
		return printer.Error(
			"unsupported --config for init",
			fmt.Sprintf("init always writes %s; got %s", config.FileName, configPath),
			[]string{fmt.Sprintf("Point --config at a %s inside the target directory", config.FileName)},
		)
	}
	dir := filepath.Dir(configPath)

	if !forceInit {
		if err := scaffold.CheckExisting(dir); err != nil {
			return printer.Error("init refused", err.Error(), nil)
		}
	}

	cfg, err := scaffold.Initialize(dir, forceInit)
	if err != nil {
		return printer.Error("initialization failed", err.Error(), nil)
	}

	scaffold.PrintSuccess(cfg)
	return nil
}
