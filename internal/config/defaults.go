package config

import (
	"os"
	"path/filepath"
)

// Default returns the baseline configuration before any file is applied.
func Default() Config {
	cacheBase, err := os.UserCacheDir()
	if err != nil {
		cacheBase = os.TempDir()
	}
	base := filepath.Join(cacheBase, "reelmatch")

	return Config{
		CacheDir:  base,
		LogDir:    filepath.Join(base, "logs"),
		LogLevel:  "info",
		LogFormat: "console",
		TMDB: TMDB{
			BaseURL:  "https://api.themoviedb.org/3",
			Language: "zh-CN",
		},
		Scrape: Scrape{
			FuzzyThreshold:         0.8,
			NoYearFloor:            0.9,
			SingleResultConfidence: 0.7,
			CacheSearchLimit:       20,
			MaxCandidates:          5,
		},
	}
}
