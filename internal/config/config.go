/*
Package config handles loading and saving quickfind configuration.

Configuration is stored in ~/.quickfind.json. Every key is optional; absent
keys keep their defaults.

Schema:
  {
    "catalog": "~/catalog.jsonl",
    "lexicon": "~/lexicon.toml",
    "search": {
      "maxResults": 20,
      "minScore": 0.2,
      "suggestTypos": true
    },
    "history": {
      "enabled": true,
      "path": "~/.quickfind/history.db",
      "retentionDays": 30
    }
  }
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/khanglvm/quickfind/internal/search"
)

// HistoryEnv disables the interaction history when set to a false value.
const HistoryEnv = "QUICKFIND_HISTORY"

// Config represents the root configuration structure.
type Config struct {
	// Catalog is the default catalog file (.json or .jsonl).
	Catalog string `json:"catalog,omitempty"`

	// Lexicon is an optional TOML file merged over the built-in lexicon.
	Lexicon string `json:"lexicon,omitempty"`

	// Search holds the default search options.
	Search search.Options `json:"search"`

	// History configures the persistent interaction log.
	History *HistoryConfig `json:"history,omitempty"`
}

// HistoryConfig configures the SQLite interaction log.
type HistoryConfig struct {
	// Enabled turns persistence on.
	Enabled bool `json:"enabled"`

	// Path overrides ~/.quickfind/history.db.
	Path string `json:"path,omitempty"`

	// RetentionDays drops older records on cleanup. Zero keeps everything.
	RetentionDays int `json:"retentionDays,omitempty"`
}

// NewConfig creates a configuration with defaults.
func NewConfig() *Config {
	return &Config{
		Search: search.DefaultOptions(),
		History: &HistoryConfig{
			Enabled:       true,
			RetentionDays: 30,
		},
	}
}

// Retention returns the history retention window, or 0 to keep everything.
func (h *HistoryConfig) Retention() time.Duration {
	if h == nil || h.RetentionDays <= 0 {
		return 0
	}
	return time.Duration(h.RetentionDays) * 24 * time.Hour
}

// GetDefaultConfigPath returns the path to ~/.quickfind.json
func GetDefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".quickfind.json"), nil
}

// Load reads the configuration from the default path.
func Load() (*Config, error) {
	configPath, err := GetDefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// ApplyEnv applies environment overrides.
func (c *Config) ApplyEnv() {
	v, ok := os.LookupEnv(HistoryEnv)
	if !ok {
		return
	}
	enabled, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return
	}
	if c.History == nil {
		c.History = &HistoryConfig{}
	}
	c.History.Enabled = enabled
}

// HistoryEnabled reports whether interactions should be persisted.
func (c *Config) HistoryEnabled() bool {
	return c.History != nil && c.History.Enabled
}

// ExpandPath replaces a leading ~ with the home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
