package config

import (
	"errors"
	"fmt"
)

// Validate checks value ranges and required fields.
func (c *Config) Validate() error {
	if c.CacheDir == "" {
		return errors.New("cache_dir must not be empty")
	}
	if err := validateUnitInterval("scrape.fuzzy_threshold", c.Scrape.FuzzyThreshold); err != nil {
		return err
	}
	if err := validateUnitInterval("scrape.no_year_floor", c.Scrape.NoYearFloor); err != nil {
		return err
	}
	if err := validateUnitInterval("scrape.single_result_confidence", c.Scrape.SingleResultConfidence); err != nil {
		return err
	}
	if c.Scrape.CacheSearchLimit <= 0 {
		return errors.New("scrape.cache_search_limit must be positive")
	}
	if c.Scrape.MaxCandidates <= 0 {
		return errors.New("scrape.max_candidates must be positive")
	}
	if c.TMDBEnabled() && c.TMDB.BaseURL == "" {
		return errors.New("tmdb.base_url must not be empty when an api key is set")
	}
	return nil
}

func validateUnitInterval(name string, value float64) error {
	if value <= 0 || value > 1 {
		return fmt.Errorf("%s must be in (0, 1], got %v", name, value)
	}
	return nil
}
