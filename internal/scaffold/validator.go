package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dyluth/fuse/internal/config"
)

// CheckExisting checks if fuse.yml already exists in dir
// Returns an error if it does, nil otherwise
func CheckExisting(dir string) error {
	if _, err := os.Stat(filepath.Join(dir, config.FileName)); err != nil {
		return nil
	}

	return fmt.Errorf("game already initialized\n\nFound existing: %s\n\nUse 'fuse init --force' to start a new game (this will overwrite existing configuration)", config.FileName)
}
