package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/citeline/config.yml.
// Repository config takes precedence over global values.
type GlobalConfig struct {
	DefaultStyle  string `yaml:"default_style,omitempty"`
	DefaultSortBy string `yaml:"default_sort_by,omitempty"`
	DefaultRepo   string `yaml:"default_repo,omitempty"` // Fallback repository when not inside one
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "citeline"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
)

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/citeline/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	if cfg.DefaultRepo != "" {
		cfg.DefaultRepo = ExpandPath(cfg.DefaultRepo)
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// GetDefaultRepo returns the fallback repository path from global config.
func GetDefaultRepo() string {
	cfg, _ := LoadGlobalConfig()
	return cfg.DefaultRepo
}

// Effective merges repository config over global config, filling any
// remaining gaps with built-in defaults.
func Effective(repo *Config) *Config {
	out := Default()
	if global, err := LoadGlobalConfig(); err == nil {
		if global.DefaultStyle != "" {
			out.DefaultStyle = global.DefaultStyle
		}
		if global.DefaultSortBy != "" {
			out.DefaultSortBy = global.DefaultSortBy
		}
	}
	if repo != nil {
		if repo.DefaultStyle != "" {
			out.DefaultStyle = repo.DefaultStyle
		}
		if repo.DefaultSortBy != "" {
			out.DefaultSortBy = repo.DefaultSortBy
		}
		if repo.TopN > 0 {
			out.TopN = repo.TopN
		}
	}
	return out
}
