package commands

import (
	"fmt"

	"github.com/dyluth/fuse/internal/config"
	"github.com/dyluth/fuse/internal/logging"
	"github.com/dyluth/fuse/internal/printer"
	"github.com/dyluth/fuse/internal/store"
	"github.com/dyluth/fuse/internal/watch"
	"github.com/spf13/cobra"
)

var watchOutputFormat string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the board as actions are recorded",
	Long: `Print the board, then print it again every time the log is saved from
any terminal. Requires the redis storage backend.

Output Formats:
  default - The board after every change
  json    - Line-delimited JSON with the change and every derived view

Examples:
  fuse watch
  fuse watch --output=json > updates.jsonl`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchOutputFormat, "output", "o", "default", "Output format (default or json)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	var outputFormat watch.OutputFormat
	switch watchOutputFormat {
	case "default":
		outputFormat = watch.OutputFormatDefault
	case "json":
		outputFormat = watch.OutputFormatJSON
	default:
		return printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", watchOutputFormat),
			[]string{"Valid formats: default, json"},
		)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Storage.Backend != config.BackendRedis {
		return printer.Error(
			"watch needs the redis backend",
			fmt.Sprintf("Game %s stores its log with the %s backend, which does not announce changes.", cfg.GameID, cfg.Storage.Backend),
			[]string{"Set storage.backend: redis and storage.redis_url in " + configPath},
		)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return printer.Error("invalid logging configuration", err.Error(), nil)
	}
	defer logger.Sync()

	ctx := commandContext(cmd)
	backend, err := store.Open(ctx, cfg)
	if err != nil {
		return printer.ErrorWithContext(
			"Redis connection failed",
			err.Error(),
			map[string]string{"URL": cfg.Storage.RedisURL},
			[]string{"Check that Redis is running and storage.redis_url is correct"},
		)
	}
	defer backend.Close()

	source, ok := backend.(watch.Source)
	if !ok {
		return fmt.Errorf("storage backend %T cannot be watched", backend)
	}

	logger.Debug("watching game")
	return watch.StreamLogEvents(ctx, source, cfg.HandSize, outputFormat, cmd.OutOrStdout())
}
