package scrape

// No-match reasons attached to DebugInfo.
const (
	ReasonEmptyTitle     = "empty_title"
	ReasonNoCacheResults = "no_cache_results"
	ReasonBelowThreshold = "below_threshold"
	ReasonYearCheck      = "year_check_failed"
	ReasonNoLiveResults  = "no_live_results"
	ReasonNoResults      = "no_cache_or_live_results"
	ReasonUnknownID      = "unknown_id"
	ReasonProviderError  = "provider_error"
)

// DebugInfo explains why a file failed to match, for display alongside the
// unmatched entry.
type DebugInfo struct {
	Reason         string
	CacheCount     int
	LiveCount      int
	BestSimilarity float64
	BestTitle      string
}
