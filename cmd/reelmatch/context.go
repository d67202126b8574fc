package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"reelmatch/internal/catalog"
	"reelmatch/internal/config"
	"reelmatch/internal/logging"
	"reelmatch/internal/scrape"
	"reelmatch/internal/tmdb"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.New(logging.Options{
			Level:  cfg.LogLevel,
			Format: cfg.LogFormat,
		})
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) openStore() (*catalog.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	store, err := catalog.Open(cfg.CacheDir)
	if err != nil {
		return nil, fmt.Errorf("open catalog cache: %w", err)
	}
	return store, nil
}

// newProvider builds the live metadata provider, or nil when no API key is
// configured.
func (c *commandContext) newProvider() (scrape.Provider, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.TMDBEnabled() {
		return nil, nil
	}
	client, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language)
	if err != nil {
		return nil, fmt.Errorf("create tmdb client: %w", err)
	}
	return scrape.NewTMDBProvider(client), nil
}

// libraryRoots resolves the folders to scan: explicit arguments win over the
// configured library_dirs.
func (c *commandContext) libraryRoots(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if len(cfg.LibraryDirs) == 0 {
		return nil, fmt.Errorf("no library folders: pass paths as arguments or set library_dirs in the config")
	}
	return cfg.LibraryDirs, nil
}

func parseKind(value string) (catalog.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "movie":
		return catalog.KindMovie, nil
	case "tv":
		return catalog.KindTV, nil
	default:
		return "", fmt.Errorf("kind: unsupported value %q (movie or tv)", value)
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
