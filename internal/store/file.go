package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dyluth/fuse/pkg/gamelog"
	"gopkg.in/yaml.v3"
)

// fileDocument is the on-disk layout of a FileStore.
type fileDocument struct {
	Entries []gamelog.Record `yaml:"entries"`
}

// FileStore keeps the log in a YAML document.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the YAML file at path.
// The file is created on the first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the file this store reads and writes.
func (f *FileStore) Path() string {
	return f.path
}

// Load reads the log. A missing file is an empty log.
func (f *FileStore) Load(ctx context.Context) ([]gamelog.Entry, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return []gamelog.Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read log file: %w", err)
	}

	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse log file %s: %w", f.path, err)
	}

	entries, err := gamelog.RecordsToEntries(doc.Entries)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize log: %w", err)
	}
	return entries, nil
}

// Save writes entries to a temporary file in the same directory and renames
// it over the log file.
func (f *FileStore) Save(ctx context.Context, entries []gamelog.Entry) error {
	records, err := gamelog.EntriesToRecords(entries)
	if err != nil {
		return fmt.Errorf("failed to serialize log: %w", err)
	}

	data, err := yaml.Marshal(fileDocument{Entries: records})
	if err != nil {
		return fmt.Errorf("failed to marshal log: %w", err)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary log file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write log file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write log file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace log file: %w", err)
	}

	return nil
}

// Close is a no-op.
func (f *FileStore) Close() error {
	return nil
}
