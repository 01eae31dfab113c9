// Package config loads wicli settings.
//
// Settings come from, in increasing precedence: built-in defaults, the user
// file at $XDG_CONFIG_HOME/wicli/config.yaml (~/.config/wicli/config.yaml),
// and WICLI_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/wicli/internal/logging"
	"github.com/Aman-CERP/wicli/internal/search"
)

// DefaultTraversalWorkers bounds concurrent directory reads per root.
// It is a fixed constant, not derived from the CPU count.
const DefaultTraversalWorkers = search.DefaultTraversalWorkers

// Config is the complete wicli configuration.
type Config struct {
	Version int           `yaml:"version" json:"version"`
	Search  SearchConfig  `yaml:"search" json:"search"`
	Sources SourcesConfig `yaml:"sources" json:"sources"`
	Log     LogConfig     `yaml:"log" json:"log"`
}

// SearchConfig tunes the search engine.
type SearchConfig struct {
	// TraversalWorkers is the per-root directory read concurrency.
	TraversalWorkers int `yaml:"traversal_workers" json:"traversal_workers"`

	// ContentWorkers is the size of the shared content pool.
	ContentWorkers int `yaml:"content_workers" json:"content_workers"`

	// MaxFileSize skips files larger than this many bytes. 0 disables the limit.
	MaxFileSize int64 `yaml:"max_file_size" json:"max_file_size"`

	// ExcludeDirs lists directory base names never descended into.
	ExcludeDirs []string `yaml:"exclude_dirs" json:"exclude_dirs"`
}

// SourcesConfig locates the source list and clone directory.
type SourcesConfig struct {
	DataDir string `yaml:"data_dir" json:"data_dir"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level" json:"level"`
}

// NewConfig returns the built-in defaults.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Search: SearchConfig{
			TraversalWorkers: DefaultTraversalWorkers,
			ContentWorkers:   runtime.NumCPU(),
			MaxFileSize:      0,
			ExcludeDirs:      []string{},
		},
		Sources: SourcesConfig{
			DataDir: logging.DataDir(),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// GetUserConfigPath returns the user configuration file path.
//   - $XDG_CONFIG_HOME/wicli/config.yaml (if XDG_CONFIG_HOME is set)
//   - ~/.config/wicli/config.yaml (default)
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "wicli", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "wicli", "config.yaml")
	}
	return filepath.Join(home, ".config", "wicli", "config.yaml")
}

// UserConfigExists reports whether the user configuration file exists.
func UserConfigExists() bool {
	_, err := os.Stat(GetUserConfigPath())
	return err == nil
}

// Load builds the effective configuration.
func Load() (*Config, error) {
	cfg, err := LoadUserConfig()
	if err != nil {
		return nil, err
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadUserConfig returns the defaults overlaid with the user file, without
// environment overrides or validation. With no file it returns the defaults.
func LoadUserConfig() (*Config, error) {
	cfg := NewConfig()

	path := GetUserConfigPath()
	if _, err := os.Stat(path); err == nil {
		if err := cfg.loadYAML(path); err != nil {
			return nil, fmt.Errorf("failed to load user config: %w", err)
		}
	}
	return cfg, nil
}

// loadYAML merges the non-zero values of a YAML file into c.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	c.mergeWith(&parsed)
	return nil
}

func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}
	if other.Search.TraversalWorkers != 0 {
		c.Search.TraversalWorkers = other.Search.TraversalWorkers
	}
	if other.Search.ContentWorkers != 0 {
		c.Search.ContentWorkers = other.Search.ContentWorkers
	}
	if other.Search.MaxFileSize != 0 {
		c.Search.MaxFileSize = other.Search.MaxFileSize
	}
	if len(other.Search.ExcludeDirs) > 0 {
		c.Search.ExcludeDirs = other.Search.ExcludeDirs
	}
	if other.Sources.DataDir != "" {
		c.Sources.DataDir = expandHome(other.Sources.DataDir)
	}
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
}

// applyEnvOverrides applies WICLI_* environment variables.
// Unparseable numbers are rejected rather than silently ignored.
func (c *Config) applyEnvOverrides() error {
	ints := []struct {
		name string
		dst  *int
	}{
		{"WICLI_TRAVERSAL_WORKERS", &c.Search.TraversalWorkers},
		{"WICLI_CONTENT_WORKERS", &c.Search.ContentWorkers},
	}
	for _, e := range ints {
		v := os.Getenv(e.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", e.name, v, err)
		}
		*e.dst = n
	}

	if v := os.Getenv("WICLI_MAX_FILE_SIZE"); v != "" {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid WICLI_MAX_FILE_SIZE %q: %w", v, err)
		}
		c.Search.MaxFileSize = n
	}
	if v := os.Getenv("WICLI_EXCLUDE_DIRS"); v != "" {
		var dirs []string
		for _, d := range strings.Split(v, ",") {
			if d = strings.TrimSpace(d); d != "" {
				dirs = append(dirs, d)
			}
		}
		c.Search.ExcludeDirs = dirs
	}
	if v := os.Getenv(logging.HomeEnv); v != "" {
		c.Sources.DataDir = expandHome(v)
	}
	if v := os.Getenv("WICLI_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Search.TraversalWorkers < 1 {
		return fmt.Errorf("search.traversal_workers must be at least 1, got %d", c.Search.TraversalWorkers)
	}
	if c.Search.ContentWorkers < 1 {
		return fmt.Errorf("search.content_workers must be at least 1, got %d", c.Search.ContentWorkers)
	}
	if c.Search.MaxFileSize < 0 {
		return fmt.Errorf("search.max_file_size must be non-negative, got %d", c.Search.MaxFileSize)
	}
	for _, d := range c.Search.ExcludeDirs {
		if strings.ContainsRune(d, filepath.Separator) {
			return fmt.Errorf("search.exclude_dirs entries must be base names, got %q", d)
		}
	}
	if c.Sources.DataDir == "" {
		return fmt.Errorf("sources.data_dir must not be empty")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("log.level must be 'debug', 'info', 'warn', or 'error', got %s", c.Log.Level)
	}
	return nil
}

// WriteYAML writes the configuration to path, creating parent directories.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// SearchOptions converts the search settings into engine options.
func (c *Config) SearchOptions() search.Options {
	return search.Options{
		TraversalWorkers: c.Search.TraversalWorkers,
		ContentWorkers:   c.Search.ContentWorkers,
		MaxFileSize:      c.Search.MaxFileSize,
		ExcludeDirs:      append([]string(nil), c.Search.ExcludeDirs...),
	}
}
