package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dyluth/fuse/internal/config"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const header = `# fuse game configuration.
#
# Every key can be overridden with a FUSE_ environment variable, e.g.
# FUSE_HAND_SIZE=4 or FUSE_STORAGE_BACKEND=redis.
#
# storage.backend: file | redis | postgres | memory
#   file      log kept in storage.path
#   redis     needs storage.redis_url, enables 'fuse watch'
#   postgres  needs storage.postgres_dsn
`

// Initialize writes a fresh fuse.yml with a new game id into dir.
// If force is true an existing fuse.yml and its file log are removed first.
func Initialize(dir string, force bool) (*config.FuseConfig, error) {
	if force {
		if err := handleForce(dir); err != nil {
			return nil, err
		}
	}

	cfg := config.Default(NewGameID())
	content, err := render(cfg)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, config.FileName)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", config.FileName, err)
	}

	if err := validateCreatedFile(path); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewGameID returns a fresh random game identifier.
func NewGameID() string {
	return uuid.New().String()
}

// handleForce removes existing files if --force was specified
func handleForce(dir string) error {
	path := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	// The old configuration may point at a file log; remove that too so the
	// new game starts empty.
	if existing, err := config.Load(path); err == nil && existing.Storage.Backend == config.BackendFile {
		if err := os.Remove(existing.Storage.Path); err == nil {
			fmt.Printf("⚠️  Removed existing log %s\n", existing.Storage.Path)
		}
	}

	fmt.Printf("⚠️  Removing existing %s...\n", config.FileName)
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", config.FileName, err)
	}
	return nil
}

func render(cfg *config.FuseConfig) ([]byte, error) {
	body, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal configuration: %w", err)
	}
	return append([]byte(header), body...), nil
}

// validateCreatedFile checks the written file loads as a valid configuration
func validateCreatedFile(path string) error {
	if _, err := config.Load(path); err != nil {
		return fmt.Errorf("created %s is not valid: %w", config.FileName, err)
	}
	return nil
}

// RotateGameID replaces game_id in the fuse.yml at path with a fresh id and
// returns it. Every other key, and the file's comments, are preserved.
func RotateGameID(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return "", fmt.Errorf("failed to parse YAML: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return "", fmt.Errorf("%s is not a YAML mapping", path)
	}

	id := NewGameID()
	root := doc.Content[0]
	found := false
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == "game_id" {
			root.Content[i+1].Value = id
			root.Content[i+1].Tag = "!!str"
			found = true
			break
		}
	}
	if !found {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "game_id"},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: id},
		)
	}

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal configuration: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return id, nil
}

// PrintSuccess prints the success message for a new game
func PrintSuccess(cfg *config.FuseConfig) {
	fmt.Println("\n✅ Successfully initialized fuse game!")
	fmt.Println("\nCreated:")
	fmt.Printf("  ✓ %s (game %s)\n", config.FileName, cfg.GameID)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit fuse.yml to pick a storage backend or hand size")
	fmt.Println("  2. Record actions: 'fuse discard RED-1 --position 2', 'fuse hint GREEN 0 3'")
	fmt.Println("  3. Run 'fuse board' or 'fuse hand' to see what is still possible")
}
