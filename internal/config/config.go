package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// TMDB contains configuration for The Movie Database API. An empty APIKey
// disables live lookups; scrapes then run against the local cache only.
type TMDB struct {
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
	Language string `toml:"language"`
}

// Scrape contains the matching policy knobs and cache query bounds.
type Scrape struct {
	FuzzyThreshold         float64 `toml:"fuzzy_threshold"`
	NoYearFloor            float64 `toml:"no_year_floor"`
	SingleResultConfidence float64 `toml:"single_result_confidence"`
	CacheSearchLimit       int     `toml:"cache_search_limit"`
	MaxCandidates          int     `toml:"max_candidates"`
}

// Config is the root configuration document.
type Config struct {
	CacheDir    string   `toml:"cache_dir"`
	LogDir      string   `toml:"log_dir"`
	LibraryDirs []string `toml:"library_dirs"`
	LogLevel    string   `toml:"log_level"`
	LogFormat   string   `toml:"log_format"`

	TMDB   TMDB   `toml:"tmdb"`
	Scrape Scrape `toml:"scrape"`
}

// TMDBEnabled reports whether live provider lookups are configured.
func (c *Config) TMDBEnabled() bool {
	return c.TMDB.APIKey != ""
}

// DefaultConfigPath returns the standard config file location.
func DefaultConfigPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, "reelmatch", "config.toml"), nil
}

// Load reads the configuration from path, or the default location when path
// is empty. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &cfg, cfg.Validate()
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// WriteSample writes the annotated sample configuration to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// EnsureDirectories creates the cache and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.CacheDir, c.LogDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
