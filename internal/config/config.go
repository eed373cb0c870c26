// Package config loads MAIC configuration from .maic/config.yaml with
// environment overrides for deployment-specific paths and knobs.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all MAIC configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Prompt template plumbing
	Prompts PromptsConfig `yaml:"prompts"`

	// Evidence reranking
	Retrieval RetrievalConfig `yaml:"retrieval"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// PromptsConfig configures template loading and caching.
type PromptsConfig struct {
	// Path to prompts.yaml
	Path string `yaml:"path"`

	// CachePath is the SQLite cache of the last good template set.
	CachePath string `yaml:"cache_path"`

	// WatchReload enables fsnotify-based hot reload of prompts.yaml.
	WatchReload bool `yaml:"watch_reload"`
}

// RetrievalConfig configures hit reranking.
type RetrievalConfig struct {
	TopK        int     `yaml:"top_k"`
	BoostReason float64 `yaml:"boost_reason"`
	BoostBook   float64 `yaml:"boost_book"`
	Parallelism int     `yaml:"parallelism"`
}

// LoggingConfig configures the category file logger.
type LoggingConfig struct {
	Debug      bool            `yaml:"debug"`
	Level      string          `yaml:"level"` // debug, info, warn, error
	Categories map[string]bool `yaml:"categories"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	maicDir := filepath.Join(home, ".maic")

	return &Config{
		Name:    "MAIC",
		Version: "1.0.0",

		Prompts: PromptsConfig{
			Path:        filepath.Join(maicDir, "prompts.yaml"),
			CachePath:   filepath.Join(maicDir, "templates.db"),
			WatchReload: true,
		},

		Retrieval: RetrievalConfig{
			TopK:        5,
			BoostReason: 0.50,
			BoostBook:   0.20,
			Parallelism: 1,
		},

		Logging: LoggingConfig{
			Debug: false,
			Level: "info",
		},
	}
}

// Load reads configuration from path, layering it over the defaults and
// applying environment overrides last. A missing file is not an error;
// the defaults plus environment are a complete configuration.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides maps MAIC_* environment variables onto the config.
// Environment always wins over file values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("MAIC_PROMPTS_PATH"); v != "" {
		c.Prompts.Path = v
	}
	if v := os.Getenv("MAIC_PROMPTS_CACHE"); v != "" {
		c.Prompts.CachePath = v
	}
	if v := os.Getenv("MAIC_TOP_K"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Retrieval.TopK = n
		}
	}
	if v := os.Getenv("MAIC_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Logging.Debug = b
		}
	}
	if v := os.Getenv("MAIC_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// validate rejects configurations that would misbehave at runtime.
func (c *Config) validate() error {
	if c.Prompts.Path == "" {
		return fmt.Errorf("prompts.path must not be empty")
	}
	if c.Retrieval.TopK < 1 {
		return fmt.Errorf("retrieval.top_k must be >= 1, got %d", c.Retrieval.TopK)
	}
	if c.Retrieval.BoostReason < 0 {
		return fmt.Errorf("retrieval.boost_reason must be >= 0, got %v", c.Retrieval.BoostReason)
	}
	if c.Retrieval.BoostBook < 0 {
		return fmt.Errorf("retrieval.boost_book must be >= 0, got %v", c.Retrieval.BoostBook)
	}
	if c.Retrieval.Parallelism < 0 {
		return fmt.Errorf("retrieval.parallelism must be >= 0, got %d", c.Retrieval.Parallelism)
	}
	return nil
}
