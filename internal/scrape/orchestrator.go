package scrape

import (
	"context"
	"log/slog"
	"strings"

	"reelmatch/internal/catalog"
	"reelmatch/internal/logging"
	"reelmatch/internal/matching"
	"reelmatch/internal/parse"
	"reelmatch/internal/scanner"
)

// Options tunes the pipeline.
type Options struct {
	Policy matching.Policy
	// SingleResultConfidence is assigned when a live search returns exactly
	// one result that failed the similarity bar. A lone hit for a specific
	// query is usually right even when the titles diverge.
	SingleResultConfidence float64
	// CacheSearchLimit caps candidates fetched per cache lookup.
	CacheSearchLimit int
}

// DefaultOptions returns the standard pipeline tuning.
func DefaultOptions() Options {
	return Options{
		Policy:                 matching.DefaultPolicy(),
		SingleResultConfidence: 0.7,
		CacheSearchLimit:       20,
	}
}

// Provenance records which source resolved a match.
type Provenance string

const (
	ProvenanceCache Provenance = "cache"
	ProvenanceAPI   Provenance = "api"
	ProvenanceNone  Provenance = "none"
)

// ItemResult is the outcome for one media file.
type ItemResult struct {
	File       scanner.MediaFile
	Matched    bool
	TMDBID     int64
	Confidence float64
	Type       matching.MatchType
	Title      string // display title of the matched entry
	Entry      *catalog.Entry
	Provenance Provenance
	Debug      *DebugInfo
}

// Orchestrator runs the cache-then-network matching pipeline.
type Orchestrator struct {
	store    *catalog.Store
	provider Provider
	opts     Options
	logger   *slog.Logger
}

// New creates an orchestrator. provider may be nil for cache-only operation;
// a nil logger disables logging.
func New(store *catalog.Store, provider Provider, opts Options, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.NewNop()
	}
	if opts.SingleResultConfidence <= 0 {
		opts.SingleResultConfidence = DefaultOptions().SingleResultConfidence
	}
	if opts.CacheSearchLimit <= 0 {
		opts.CacheSearchLimit = DefaultOptions().CacheSearchLimit
	}
	return &Orchestrator{
		store:    store,
		provider: provider,
		opts:     opts,
		logger:   logging.NewComponentLogger(logger, "scrape"),
	}
}

// ScrapeItems processes items serially, reporting per-item progress through
// tracker. Cancellation is observed between items; results for items
// processed before the cancellation are returned alongside ctx-style
// semantics: the error is nil even when cut short, the tracker status tells
// the caller what happened.
func (o *Orchestrator) ScrapeItems(ctx context.Context, items []scanner.MediaFile, tracker *Tracker) []ItemResult {
	if tracker == nil {
		tracker = NewTracker(len(items))
	}
	tracker.Start()
	defer tracker.Complete()

	results := make([]ItemResult, 0, len(items))
	for _, item := range items {
		if tracker.Cancelled() || ctx.Err() != nil {
			tracker.Cancel()
			break
		}
		tracker.BeginItem(item.Name)

		result := o.processItem(ctx, item)
		results = append(results, result)
		tracker.FinishItem(result.Matched)

		if result.Matched {
			o.logger.Debug("matched",
				logging.String("file", item.Name),
				logging.Int64("tmdb_id", result.TMDBID),
				logging.Float64("confidence", result.Confidence))
		} else {
			o.logger.Debug("unmatched",
				logging.String("file", item.Name),
				logging.String("reason", result.Debug.Reason))
		}
	}
	return results
}

func (o *Orchestrator) processItem(ctx context.Context, item scanner.MediaFile) ItemResult {
	kind := item.Kind
	if !kind.Valid() {
		kind = catalog.KindMovie
	}

	if item.TMDBID != 0 {
		return o.resolveKnownID(ctx, item, kind)
	}

	title := strings.TrimSpace(item.ParsedTitle)
	if title == "" {
		return unmatched(item, &DebugInfo{Reason: ReasonEmptyTitle})
	}

	terms := parse.SplitMixedTitle(title)

	cacheEntries := o.searchCache(ctx, kind, terms)
	if result, ok := matchAgainst(item, terms, cacheEntries, o.opts.Policy); ok {
		result.Provenance = ProvenanceCache
		return result
	}

	if o.provider == nil {
		debug := &DebugInfo{Reason: ReasonBelowThreshold, CacheCount: len(cacheEntries)}
		if len(cacheEntries) == 0 {
			debug.Reason = ReasonNoCacheResults
		}
		fillBest(debug, item, terms, cacheEntries, o.opts.Policy)
		return unmatched(item, debug)
	}
	return o.resolveLive(ctx, item, kind, terms, cacheEntries)
}

// resolveKnownID short-circuits matching when the file already carries an
// external id: it is trusted as an exact match.
func (o *Orchestrator) resolveKnownID(ctx context.Context, item scanner.MediaFile, kind catalog.Kind) ItemResult {
	provenance := ProvenanceCache
	entry, err := o.store.GetByID(ctx, kind, item.TMDBID)
	if err != nil {
		o.logger.Warn("cache lookup failed",
			logging.Int64("tmdb_id", item.TMDBID),
			logging.Error(err))
	}
	if entry == nil && o.provider != nil {
		entry, err = o.provider.Enrich(ctx, kind, item.TMDBID)
		if err != nil {
			o.logger.Warn("provider lookup for known id failed",
				logging.Int64("tmdb_id", item.TMDBID),
				logging.Error(err))
			return unmatched(item, &DebugInfo{Reason: ReasonProviderError})
		}
		o.upsert(ctx, *entry)
		provenance = ProvenanceAPI
	}
	if entry == nil {
		return unmatched(item, &DebugInfo{Reason: ReasonUnknownID})
	}
	return ItemResult{
		File:       item,
		Matched:    true,
		TMDBID:     entry.ID,
		Confidence: 1.0,
		Type:       matching.MatchExact,
		Title:      entry.DisplayTitle(),
		Entry:      entry,
		Provenance: provenance,
	}
}

// searchCache collects candidates for every query term, deduplicated by id.
func (o *Orchestrator) searchCache(ctx context.Context, kind catalog.Kind, terms []string) []catalog.Entry {
	seen := make(map[int64]struct{})
	var entries []catalog.Entry
	for _, term := range terms {
		found, err := o.store.SearchByTitle(ctx, kind, term, o.opts.CacheSearchLimit)
		if err != nil {
			o.logger.Warn("cache search failed",
				logging.String("query", term),
				logging.Error(err))
			continue
		}
		for _, entry := range found {
			if _, dup := seen[entry.ID]; dup {
				continue
			}
			seen[entry.ID] = struct{}{}
			entries = append(entries, entry)
		}
	}
	return entries
}

// resolveLive consults the provider after the cache produced no acceptable
// match. Accepted results are written back to the cache so the next scrape
// resolves offline.
func (o *Orchestrator) resolveLive(ctx context.Context, item scanner.MediaFile, kind catalog.Kind, terms []string, cacheEntries []catalog.Entry) ItemResult {
	liveEntries, err := o.searchLive(ctx, kind, terms, item.ParsedYear)
	if err != nil {
		debug := &DebugInfo{Reason: ReasonProviderError, CacheCount: len(cacheEntries)}
		fillBest(debug, item, terms, cacheEntries, o.opts.Policy)
		return unmatched(item, debug)
	}
	if len(liveEntries) == 0 {
		debug := &DebugInfo{Reason: ReasonNoLiveResults, CacheCount: len(cacheEntries)}
		if len(cacheEntries) == 0 {
			debug.Reason = ReasonNoResults
		}
		fillBest(debug, item, terms, cacheEntries, o.opts.Policy)
		return unmatched(item, debug)
	}

	if result, ok := matchAgainst(item, terms, liveEntries, o.opts.Policy); ok {
		if persisted := o.persistLive(ctx, kind, result.TMDBID, liveEntries); persisted != nil {
			result.Entry = persisted
			result.Title = persisted.DisplayTitle()
		}
		result.Provenance = ProvenanceAPI
		return result
	}

	// A single hit for a specific query is trusted even below the similarity
	// bar, at reduced confidence.
	if len(liveEntries) == 1 {
		entry := &liveEntries[0]
		if persisted := o.persistLive(ctx, kind, entry.ID, liveEntries); persisted != nil {
			entry = persisted
		}
		return ItemResult{
			File:       item,
			Matched:    true,
			TMDBID:     entry.ID,
			Confidence: o.opts.SingleResultConfidence,
			Type:       matching.MatchFuzzy,
			Title:      entry.DisplayTitle(),
			Entry:      entry,
			Provenance: ProvenanceAPI,
		}
	}

	debug := &DebugInfo{
		Reason:     ReasonBelowThreshold,
		CacheCount: len(cacheEntries),
		LiveCount:  len(liveEntries),
	}
	fillBest(debug, item, terms, append(append([]catalog.Entry{}, cacheEntries...), liveEntries...), o.opts.Policy)
	return unmatched(item, debug)
}

// searchLive queries the provider term by term and returns the first
// non-empty result set.
func (o *Orchestrator) searchLive(ctx context.Context, kind catalog.Kind, terms []string, year int) ([]catalog.Entry, error) {
	var lastErr error
	for _, term := range terms {
		entries, err := o.provider.Search(ctx, kind, term, year)
		if err != nil {
			o.logger.Warn("provider search failed",
				logging.String("query", term),
				logging.Error(err))
			lastErr = err
			continue
		}
		if len(entries) > 0 {
			return entries, nil
		}
	}
	return nil, lastErr
}

// persistLive enriches a live hit with localized titles and writes it to the
// cache. Enrichment failures degrade to the search result.
func (o *Orchestrator) persistLive(ctx context.Context, kind catalog.Kind, id int64, entries []catalog.Entry) *catalog.Entry {
	var entry *catalog.Entry
	for i := range entries {
		if entries[i].ID == id {
			entry = &entries[i]
			break
		}
	}
	if entry == nil {
		return nil
	}

	if enriched, err := o.provider.Enrich(ctx, kind, id); err != nil {
		o.logger.Warn("enrich failed, caching search result",
			logging.Int64("tmdb_id", id),
			logging.Error(err))
	} else {
		entry = enriched
	}

	o.upsert(ctx, *entry)
	return entry
}

func (o *Orchestrator) upsert(ctx context.Context, entry catalog.Entry) {
	if err := o.store.Upsert(ctx, entry); err != nil {
		o.logger.Warn("cache upsert failed",
			logging.Int64("tmdb_id", entry.ID),
			logging.Error(err))
	}
}

// matchAgainst runs the matcher once per query term and accepts the first
// term that produces a match. Terms are ordered original title first.
func matchAgainst(item scanner.MediaFile, terms []string, entries []catalog.Entry, policy matching.Policy) (ItemResult, bool) {
	if len(entries) == 0 {
		return ItemResult{}, false
	}
	for _, term := range terms {
		result := matching.Match(term, item.ParsedYear, entries, policy)
		if !result.Matched {
			continue
		}
		entry := entryByID(entries, result.TMDBID)
		res := ItemResult{
			File:       item,
			Matched:    true,
			TMDBID:     result.TMDBID,
			Confidence: result.Confidence,
			Type:       result.Type,
			Entry:      entry,
		}
		if entry != nil {
			res.Title = entry.DisplayTitle()
		}
		return res, true
	}
	return ItemResult{}, false
}

// fillBest records the strongest rejected candidate across all terms for the
// diagnostics block. When that candidate only lost to the year filter, the
// reason is sharpened to say so.
func fillBest(debug *DebugInfo, item scanner.MediaFile, terms []string, entries []catalog.Entry, policy matching.Policy) {
	bestType := matching.MatchFuzzy
	for _, term := range terms {
		result := matching.Match(term, item.ParsedYear, entries, policy)
		for _, c := range result.Candidates {
			if c.Similarity > debug.BestSimilarity {
				debug.BestSimilarity = c.Similarity
				debug.BestTitle = c.Entry.DisplayTitle()
				bestType = c.Type
			}
		}
	}
	if debug.Reason == ReasonBelowThreshold && bestType == matching.MatchYearMismatch {
		debug.Reason = ReasonYearCheck
	}
}

func entryByID(entries []catalog.Entry, id int64) *catalog.Entry {
	for i := range entries {
		if entries[i].ID == id {
			return &entries[i]
		}
	}
	return nil
}

func unmatched(item scanner.MediaFile, debug *DebugInfo) ItemResult {
	return ItemResult{File: item, Provenance: ProvenanceNone, Debug: debug}
}
