package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dyluth/fuse/pkg/deck"
	"github.com/spf13/viper"
)

// FileName is the conventional name of the configuration file.
const FileName = "fuse.yml"

// Storage backends
const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// MaxHandSize bounds hand_size; larger hands do not occur in the game.
const MaxHandSize = 8

// FuseConfig represents the top-level fuse.yml configuration
type FuseConfig struct {
	Version  string        `mapstructure:"version" yaml:"version"`
	GameID   string        `mapstructure:"game_id" yaml:"game_id"`
	HandSize int           `mapstructure:"hand_size" yaml:"hand_size"`
	Storage  StorageConfig `mapstructure:"storage" yaml:"storage"`
	Logging  LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// StorageConfig selects and configures where the action log is persisted
type StorageConfig struct {
	Backend     string `mapstructure:"backend" yaml:"backend"`                     // file, redis, postgres or memory
	Path        string `mapstructure:"path" yaml:"path,omitempty"`                 // file backend: YAML log file
	RedisURL    string `mapstructure:"redis_url" yaml:"redis_url,omitempty"`       // redis backend: redis://host:port/db
	PostgresDSN string `mapstructure:"postgres_dsn" yaml:"postgres_dsn,omitempty"` // postgres backend: connection string
}

// LoggingConfig controls diagnostic output on stderr
type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level"` // debug, info, warn or error
	JSON  bool   `mapstructure:"json" yaml:"json"`   // emit JSON lines instead of console text
}

// Default returns a configuration with every default applied and the given game id.
func Default(gameID string) *FuseConfig {
	return &FuseConfig{
		Version:  "1.0",
		GameID:   gameID,
		HandSize: deck.DefaultHandSize,
		Storage: StorageConfig{
			Backend: BackendFile,
			Path:    "fuse-log.yml",
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Validate performs strict validation on the configuration, filling in
// defaults for optional fields that were left empty.
func (c *FuseConfig) Validate() error {
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}

	if c.GameID == "" {
		return fmt.Errorf("game_id is required")
	}

	if c.HandSize == 0 {
		c.HandSize = deck.DefaultHandSize
	}
	if c.HandSize < 1 || c.HandSize > MaxHandSize {
		return fmt.Errorf("hand_size must be between 1 and %d, got %d", MaxHandSize, c.HandSize)
	}

	if err := c.Storage.Validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "warn"
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging: invalid level: %s (must be 'debug', 'info', 'warn' or 'error')", c.Logging.Level)
	}

	return nil
}

// Validate checks the selected backend has what it needs.
func (s *StorageConfig) Validate() error {
	if s.Backend == "" {
		s.Backend = BackendFile
	}

	switch s.Backend {
	case BackendFile:
		if s.Path == "" {
			s.Path = "fuse-log.yml"
		}
	case BackendRedis:
		if s.RedisURL == "" {
			return fmt.Errorf("redis_url is required for the redis backend")
		}
	case BackendPostgres:
		if s.PostgresDSN == "" {
			return fmt.Errorf("postgres_dsn is required for the postgres backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("invalid backend: %s (must be 'file', 'redis', 'postgres' or 'memory')", s.Backend)
	}

	return nil
}

// Load reads fuse.yml from path, applies FUSE_* environment overrides
// (FUSE_HAND_SIZE, FUSE_STORAGE_BACKEND, FUSE_STORAGE_REDIS_URL, ...) and
// validates the result. A relative storage.path is resolved against the
// directory holding the file.
func Load(path string) (*FuseConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("FUSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var parseErr viper.ConfigParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config FuseConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// A relative log path is relative to the configuration file.
	if config.Storage.Backend == BackendFile && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(filepath.Dir(path), config.Storage.Path)
	}

	return &config, nil
}

// setDefaults registers every key so environment overrides apply even when
// fuse.yml omits the key.
func setDefaults(v *viper.Viper) {
	d := Default("")
	v.SetDefault("version", d.Version)
	v.SetDefault("game_id", "")
	v.SetDefault("hand_size", d.HandSize)
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.path", d.Storage.Path)
	v.SetDefault("storage.redis_url", "")
	v.SetDefault("storage.postgres_dsn", "")
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.json", false)
}
