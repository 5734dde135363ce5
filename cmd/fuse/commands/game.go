package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/dyluth/fuse/internal/board"
	"github.com/dyluth/fuse/internal/config"
	"github.com/dyluth/fuse/internal/logging"
	"github.com/dyluth/fuse/internal/printer"
	"github.com/dyluth/fuse/internal/resolver"
	"github.com/dyluth/fuse/internal/session"
	"github.com/dyluth/fuse/internal/store"
	"github.com/dyluth/fuse/pkg/deck"
	"github.com/dyluth/fuse/pkg/gamelog"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// game bundles everything a command needs to read or change the log.
type game struct {
	cfg     *config.FuseConfig
	logger  *zap.Logger
	backend store.Backend
	tracker *session.Tracker
}

func (g *game) Close() {
	g.backend.Close()
	g.logger.Sync()
}

// loadConfig reads the configuration named by --config and applies --storage.
func loadConfig() (*config.FuseConfig, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, printer.Error(
				"no game found",
				fmt.Sprintf("Configuration file %s does not exist.", configPath),
				[]string{"Start a new game first:\n  fuse init"},
			)
		}
		return nil, printer.Error("invalid configuration", err.Error(), nil)
	}

	if storageOverride != "" {
		cfg.Storage.Backend = storageOverride
		if err := cfg.Validate(); err != nil {
			return nil, printer.Error("invalid --storage", err.Error(), nil)
		}
	}

	return cfg, nil
}

// openGame loads the configuration, connects the store and loads the log.
func openGame(ctx context.Context) (*game, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, printer.Error("invalid logging configuration", err.Error(), nil)
	}

	backend, err := store.Open(ctx, cfg)
	if err != nil {
		logger.Sync()
		return nil, printer.ErrorWithContext(
			"storage unavailable",
			err.Error(),
			map[string]string{"Backend": cfg.Storage.Backend, "Game": cfg.GameID},
			[]string{
				"Check the storage section of " + configPath,
				"Use a local log for now:\n  fuse --storage file <command>",
			},
		)
	}

	tracker, err := session.New(ctx, backend, session.Options{
		HandSize: cfg.HandSize,
		Logger:   logger.With(zap.String("game_id", cfg.GameID)),
	})
	if err != nil {
		details := map[string]string{"Backend": cfg.Storage.Backend, "Game": cfg.GameID}
		if file, ok := backend.(*store.FileStore); ok {
			details["Log file"] = file.Path()
		}
		backend.Close()
		logger.Sync()
		return nil, printer.ErrorWithContext("failed to load game log", err.Error(), details, []string{
			"Fix or remove the stored log, then retry",
		})
	}

	return &game{cfg: cfg, logger: logger, backend: backend, tracker: tracker}, nil
}

// commandContext returns the command's context, or a background context
// when the command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// reportResult prints the outcome of a dispatch, warning when the log could
// not be saved.
func reportResult(res *session.Result, format string, a ...any) {
	printer.Success(format, a...)
	switch {
	case res.SaveErr == nil:
	case gamelog.IsPublishError(res.SaveErr):
		printer.Warning("The entry was saved but watchers were not notified: %v\n", res.SaveErr)
	default:
		printer.Warning("The entry is recorded for this run but was not saved: %v\n", res.SaveErr)
	}
}

// describeResult renders the appended entry for success messages.
func describeResult(res *session.Result) string {
	return board.Describe(res.Entry)
}

// parseCard parses a COLOR-RANK or COLOR-RANK-INDEX argument. Input is
// case-insensitive.
func parseCard(arg string) (deck.CardRef, error) {
	ref, err := deck.ParseCardRef(strings.ToUpper(strings.TrimSpace(arg)))
	if err != nil {
		return deck.CardRef{}, printer.Error(
			"invalid card",
			err.Error(),
			[]string{"Cards are written COLOR-RANK (RED-3) or COLOR-RANK-INDEX (RED-3-1)"},
		)
	}
	return ref, nil
}

// commandError turns a domain error into a formatted CLI error.
func commandError(err error) error {
	var exhausted *resolver.ExhaustionError
	var alreadyOut *resolver.AlreadyOutError

	switch {
	case errors.As(err, &exhausted):
		return printer.Error(
			"no copies left",
			err.Error(),
			[]string{
				"Check the board:\n  fuse board",
				fmt.Sprintf("Restore a copy recorded by mistake:\n  fuse restore %s", exhausted.Type),
			},
		)
	case errors.As(err, &alreadyOut):
		return printer.Error(
			"card already out of play",
			err.Error(),
			[]string{fmt.Sprintf("Name the type to use the next free copy:\n  %s", alreadyOut.Card.Type())},
		)
	case resolver.IsNotOutOfPlayError(err):
		return printer.Error("nothing to restore", err.Error(), nil)
	case errors.Is(err, session.ErrAlreadyPlayed):
		return printer.Error(
			"card already played",
			err.Error(),
			[]string{"A card type can be played once; record a discard instead"},
		)
	case gamelog.IsEmptyLog(err):
		return printer.Error("nothing to undo", "The log is empty.", nil)
	case deck.IsMalformedID(err):
		return printer.Error("invalid card", err.Error(), nil)
	default:
		return printer.Error("command failed", err.Error(), nil)
	}
}
