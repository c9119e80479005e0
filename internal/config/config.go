// Package config handles repository configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matsen/citeline/internal/citation"
)

// Config represents repository configuration stored in .citeline/config.json.
type Config struct {
	DefaultStyle  string `json:"default_style,omitempty"`   // Bibliography style: apa, ieee, nature, mla
	DefaultSortBy string `json:"default_sort_by,omitempty"` // Sort key: author, year, title
	TopN          int    `json:"top_n,omitempty"`           // Entries in the most-cited ranking
}

const (
	CitelineDir = ".citeline"
	ConfigFile  = "config.json"
)

// Default returns the configuration written by `citeline init`.
func Default() *Config {
	return &Config{
		DefaultStyle:  string(citation.APA),
		DefaultSortBy: string(citation.SortByAuthor),
		TopN:          10,
	}
}

// CitelinePath returns the path to the .citeline directory from a root path.
func CitelinePath(root string) string {
	return filepath.Join(root, CitelineDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, CitelineDir, ConfigFile)
}

// DataPath returns the directory holding the JSONL files and SQLite mirror.
func DataPath(root string) string {
	return filepath.Join(root, CitelineDir)
}

// IsRepository checks if the given path contains a citeline repository.
func IsRepository(root string) bool {
	info, err := os.Stat(CitelinePath(root))
	return err == nil && info.IsDir()
}

// FindRepository walks up from the given path to find a citeline repository.
// Returns the repository root path or an error if not found.
func FindRepository(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsRepository(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a citeline repository (no .citeline directory found)")
		}
		abs = parent
	}
}

// Load reads configuration from the repository at the given root.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Save writes configuration to the repository at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Validate checks that the configured style, sort key and top-n are usable.
func (c *Config) Validate() error {
	if c.DefaultStyle != "" {
		if _, err := citation.ParseStyle(c.DefaultStyle); err != nil {
			return err
		}
	}
	if c.DefaultSortBy != "" {
		if _, err := citation.ParseSortKey(c.DefaultSortBy); err != nil {
			return err
		}
	}
	if c.TopN < 0 {
		return fmt.Errorf("top_n must not be negative: %d", c.TopN)
	}
	return nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
