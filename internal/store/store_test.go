package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/dyluth/fuse/internal/config"
	"github.com/dyluth/fuse/pkg/deck"
	"github.com/dyluth/fuse/pkg/gamelog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntries() []gamelog.Entry {
	red1 := deck.InstanceID{Color: deck.Red, Rank: deck.One, Index: 0}
	return []gamelog.Entry{
		{Action: gamelog.Discard{Card: deck.TypeRef(deck.NewTypeID(deck.Blue, deck.Five)), Position: gamelog.At(2)}, RecordedAtMs: 1000},
		{Action: gamelog.Play{Card: deck.InstanceRef(red1)}, RecordedAtMs: 2000},
		{Action: gamelog.Hint{Positions: []deck.Position{0, 3}, Clue: deck.ColorClue(deck.Green)}, RecordedAtMs: 3000},
		{Action: gamelog.Restore{Card: red1}, RecordedAtMs: 4000},
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	loaded, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)

	entries := testEntries()
	require.NoError(t, m.Save(ctx, entries))
	entries[0] = gamelog.Entry{}

	loaded, err = m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, testEntries(), loaded)
	assert.Equal(t, 1, m.Saves())
	assert.NoError(t, m.Close())
}

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	f := NewFileStore(filepath.Join(t.TempDir(), "log.yml"))

	entries, err := f.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileStore_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "log.yml")
	f := NewFileStore(path)

	require.NoError(t, f.Save(ctx, testEntries()))

	loaded, err := f.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, testEntries(), loaded)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "card: BLUE-5")
	assert.Contains(t, string(data), "card: RED-1-0")

	// Only the log file remains; the temporary file was renamed over it.
	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestFileStore_SaveReplaces(t *testing.T) {
	ctx := context.Background()
	f := NewFileStore(filepath.Join(t.TempDir(), "log.yml"))

	require.NoError(t, f.Save(ctx, testEntries()))
	require.NoError(t, f.Save(ctx, testEntries()[:1]))

	loaded, err := f.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.yml")
	require.NoError(t, os.WriteFile(path, []byte("entries:\n  - kind: discard\n    card: PURPLE-9\n"), 0644))

	_, err := NewFileStore(path).Load(context.Background())
	assert.Error(t, err)
	assert.True(t, deck.IsMalformedID(err))
}

func TestFileStore_UnwritableDirectory(t *testing.T) {
	f := NewFileStore(filepath.Join(t.TempDir(), "missing", "log.yml"))

	err := f.Save(context.Background(), testEntries())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create temporary log file")
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("file", func(t *testing.T) {
		cfg := config.Default("g")
		cfg.Storage.Path = filepath.Join(t.TempDir(), "log.yml")
		backend, err := Open(ctx, cfg)
		require.NoError(t, err)
		defer backend.Close()
		assert.IsType(t, &FileStore{}, backend)
	})

	t.Run("memory", func(t *testing.T) {
		cfg := config.Default("g")
		cfg.Storage.Backend = config.BackendMemory
		backend, err := Open(ctx, cfg)
		require.NoError(t, err)
		assert.IsType(t, &MemoryStore{}, backend)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := config.Default("g")
		cfg.Storage.Backend = config.BackendRedis
		cfg.Storage.RedisURL = "redis://" + mr.Addr()
		backend, err := Open(ctx, cfg)
		require.NoError(t, err)
		defer backend.Close()

		require.NoError(t, backend.Save(ctx, testEntries()))
		loaded, err := backend.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, testEntries(), loaded)
		assert.True(t, mr.Exists(gamelog.LogKey("g")))
	})

	t.Run("redis bad url", func(t *testing.T) {
		cfg := config.Default("g")
		cfg.Storage.Backend = config.BackendRedis
		cfg.Storage.RedisURL = "http://nope"
		_, err := Open(ctx, cfg)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid redis_url")
	})

	t.Run("unknown", func(t *testing.T) {
		cfg := config.Default("g")
		cfg.Storage.Backend = "s3"
		_, err := Open(ctx, cfg)
		assert.Error(t, err)
	})
}
