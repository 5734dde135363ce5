// Package store provides the persistence backends for a game's action log.
//
// Every backend stores the whole log and replaces it wholesale on Save, so a
// reader never sees a partially written log. The backend is chosen by the
// storage section of fuse.yml:
//
//	file      YAML document on disk (default)
//	redis     Redis list, with change events for fuse watch
//	postgres  one row per entry
//	memory    nothing persisted, for tests and throwaway games
package store

import (
	"context"
	"fmt"
	"io"

	"github.com/dyluth/fuse/internal/config"
	"github.com/dyluth/fuse/pkg/gamelog"
	"github.com/redis/go-redis/v9"
)

// Backend is a log store that owns resources which must be released.
type Backend interface {
	Load(ctx context.Context) ([]gamelog.Entry, error)
	Save(ctx context.Context, entries []gamelog.Entry) error
	io.Closer
}

// Open connects the backend selected by cfg.Storage.
// cfg is expected to have been validated.
func Open(ctx context.Context, cfg *config.FuseConfig) (Backend, error) {
	switch cfg.Storage.Backend {
	case config.BackendFile, "":
		return NewFileStore(cfg.Storage.Path), nil

	case config.BackendMemory:
		return NewMemoryStore(), nil

	case config.BackendRedis:
		opts, err := redis.ParseURL(cfg.Storage.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis_url: %w", err)
		}
		client, err := gamelog.NewClient(opts, cfg.GameID)
		if err != nil {
			return nil, err
		}
		if err := client.Ping(ctx); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		return client, nil

	case config.BackendPostgres:
		return NewPostgresStore(ctx, cfg.Storage.PostgresDSN, cfg.GameID)

	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
}
