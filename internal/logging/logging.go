// Package logging builds the zap logger shared by the CLI and the session.
package logging

import (
	"fmt"

	"github.com/dyluth/fuse/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Event names attached to session log lines under the "event" key.
const (
	EventEntryAppended = "entry_appended"
	EventEntryDropped  = "entry_dropped"
	EventLogReset      = "log_reset"
	EventSaveFailed    = "save_failed"
	EventPublishFailed = "publish_failed"
)

// New builds a logger writing to stderr at the configured level.
// Console output is used unless cfg.JSON is set.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	level := cfg.Level
	if level == "" {
		level = "warn"
	}
	atomic, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	if cfg.JSON {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.DisableStacktrace = true
	}

	zapCfg.Level = atomic
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}

	return zapCfg.Build()
}
