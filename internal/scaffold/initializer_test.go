package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dyluth/fuse/internal/config"
	"github.com/google/uuid"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name      string
		force     bool
		setupFunc func(string)
	}{
		{
			name:      "fresh initialization",
			force:     false,
			setupFunc: func(dir string) {},
		},
		{
			name:  "force initialization replaces existing game",
			force: true,
			setupFunc: func(dir string) {
				os.WriteFile(filepath.Join(dir, "fuse.yml"), []byte("version: \"1.0\"\ngame_id: old\nstorage:\n  backend: file\n  path: old-log.yml\n"), 0644)
				os.WriteFile(filepath.Join(dir, "old-log.yml"), []byte("entries: []\n"), 0644)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tt.setupFunc(dir)

			cfg, err := Initialize(dir, tt.force)
			if err != nil {
				t.Fatalf("Initialize() error = %v", err)
			}

			if _, err := uuid.Parse(cfg.GameID); err != nil {
				t.Errorf("game id %q is not a UUID: %v", cfg.GameID, err)
			}

			loaded, err := config.Load(filepath.Join(dir, "fuse.yml"))
			if err != nil {
				t.Fatalf("created fuse.yml does not load: %v", err)
			}
			if loaded.GameID != cfg.GameID {
				t.Errorf("loaded game id = %q, want %q", loaded.GameID, cfg.GameID)
			}
			if loaded.HandSize != 5 || loaded.Storage.Backend != config.BackendFile {
				t.Errorf("unexpected defaults: %+v", loaded)
			}

			content, _ := os.ReadFile(filepath.Join(dir, "fuse.yml"))
			if !strings.HasPrefix(string(content), "# fuse game configuration.") {
				t.Errorf("fuse.yml is missing its header comment")
			}

			if tt.force {
				if _, err := os.Stat(filepath.Join(dir, "old-log.yml")); err == nil {
					t.Errorf("expected the old log to be removed")
				}
			}
		})
	}
}

func TestInitialize_UnwritableDirectory(t *testing.T) {
	_, err := Initialize(filepath.Join(t.TempDir(), "missing"), false)
	if err == nil || !strings.Contains(err.Error(), "failed to write fuse.yml") {
		t.Errorf("expected write failure, got %v", err)
	}
}

func TestRotateGameID(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Initialize(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "fuse.yml")

	id, err := RotateGameID(path)
	if err != nil {
		t.Fatalf("RotateGameID() error = %v", err)
	}
	if id == cfg.GameID {
		t.Errorf("game id was not changed")
	}

	loaded, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.GameID != id {
		t.Errorf("loaded game id = %q, want %q", loaded.GameID, id)
	}

	content, _ := os.ReadFile(path)
	if !strings.Contains(string(content), "FUSE_HAND_SIZE") {
		t.Errorf("comments were not preserved:\n%s", content)
	}
}

func TestRotateGameID_AddsMissingKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fuse.yml")
	os.WriteFile(path, []byte("version: \"1.0\"\n"), 0644)

	id, err := RotateGameID(path)
	if err != nil {
		t.Fatal(err)
	}

	loaded, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.GameID != id {
		t.Errorf("loaded game id = %q, want %q", loaded.GameID, id)
	}
}

func TestRotateGameID_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := RotateGameID(filepath.Join(dir, "missing.yml")); err == nil {
		t.Error("expected error for missing file")
	}

	list := filepath.Join(dir, "list.yml")
	os.WriteFile(list, []byte("- a\n- b\n"), 0644)
	if _, err := RotateGameID(list); err == nil || !strings.Contains(err.Error(), "not a YAML mapping") {
		t.Errorf("expected mapping error, got %v", err)
	}
}
