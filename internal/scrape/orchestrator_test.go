package scrape

import (
	"context"
	"errors"
	"sync"
	"testing"

	"reelmatch/internal/catalog"
	"reelmatch/internal/matching"
	"reelmatch/internal/scanner"
	"reelmatch/internal/testsupport"
)

// fakeProvider is a scriptable live-metadata source.
type fakeProvider struct {
	mu          sync.Mutex
	searchWith  []catalog.Entry
	searchErr   error
	searchCalls int
	enrichWith  map[int64]catalog.Entry
	enrichCalls int
	block       chan struct{} // when set, Search blocks until closed
}

func (f *fakeProvider) Search(ctx context.Context, kind catalog.Kind, query string, year int) ([]catalog.Entry, error) {
	f.mu.Lock()
	f.searchCalls++
	block := f.block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchWith, nil
}

func (f *fakeProvider) Enrich(ctx context.Context, kind catalog.Kind, id int64) (*catalog.Entry, error) {
	f.mu.Lock()
	f.enrichCalls++
	f.mu.Unlock()

	entry, ok := f.enrichWith[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &entry, nil
}

func (f *fakeProvider) calls() (search, enrich int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.searchCalls, f.enrichCalls
}

func parasite() catalog.Entry {
	return catalog.Entry{
		ID:            496243,
		Kind:          catalog.KindMovie,
		Title:         "Parasite",
		TitleCN:       "寄生虫",
		OriginalTitle: "기생충",
		ReleaseDate:   "2019-05-30",
		Popularity:    88.5,
	}
}

func movieItem(title string, year int) scanner.MediaFile {
	return scanner.MediaFile{
		Path:        "/library/" + title,
		Name:        title,
		ParsedTitle: title,
		ParsedYear:  year,
		Kind:        catalog.KindMovie,
	}
}

func TestScrapeMatchesFromCacheWithoutLiveLookup(t *testing.T) {
	store := testsupport.MustOpenStore(t)
	testsupport.SeedEntries(t, store, parasite())
	provider := &fakeProvider{}
	orch := New(store, provider, DefaultOptions(), nil)

	results := orch.ScrapeItems(context.Background(),
		[]scanner.MediaFile{movieItem("Parasite", 2019)}, nil)

	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	r := results[0]
	if !r.Matched {
		t.Fatalf("expected match, debug: %+v", r.Debug)
	}
	if r.TMDBID != 496243 {
		t.Fatalf("TMDBID = %d, want 496243", r.TMDBID)
	}
	if r.Confidence != 1.0 {
		t.Fatalf("Confidence = %v, want 1.0", r.Confidence)
	}
	if r.Type != matching.MatchExact {
		t.Fatalf("Type = %q, want exact", r.Type)
	}
	if r.Provenance != ProvenanceCache {
		t.Fatalf("Provenance = %q, want cache", r.Provenance)
	}
	if searches, _ := provider.calls(); searches != 0 {
		t.Fatalf("provider searched %d times, want cache-only resolution", searches)
	}
}

func TestScrapeMatchesChineseHalfOfMixedTitle(t *testing.T) {
	store := testsupport.MustOpenStore(t)
	testsupport.SeedEntries(t, store, catalog.Entry{
		ID:          535167,
		Kind:        catalog.KindMovie,
		Title:       "The Wandering Earth",
		TitleCN:     "流浪地球",
		ReleaseDate: "2019-02-05",
		Popularity:  40,
	})
	orch := New(store, nil, DefaultOptions(), nil)

	results := orch.ScrapeItems(context.Background(),
		[]scanner.MediaFile{movieItem("流浪地球 The Wandering Earth", 0)}, nil)

	if !results[0].Matched {
		t.Fatalf("expected match, debug: %+v", results[0].Debug)
	}
	if results[0].TMDBID != 535167 {
		t.Fatalf("TMDBID = %d, want 535167", results[0].TMDBID)
	}
}

func TestScrapeKnownIDShortCircuits(t *testing.T) {
	store := testsupport.MustOpenStore(t)
	testsupport.SeedEntries(t, store, parasite())
	provider := &fakeProvider{}
	orch := New(store, provider, DefaultOptions(), nil)

	item := movieItem("completely wrong name", 1950)
	item.TMDBID = 496243
	results := orch.ScrapeItems(context.Background(), []scanner.MediaFile{item}, nil)

	r := results[0]
	if !r.Matched || r.Confidence != 1.0 || r.Type != matching.MatchExact {
		t.Fatalf("known id not trusted: %+v", r)
	}
	if searches, enriches := provider.calls(); searches != 0 || enriches != 0 {
		t.Fatal("known cached id should not hit the provider")
	}
}

func TestScrapeKnownIDFetchedAndCached(t *testing.T) {
	store := testsupport.MustOpenStore(t)
	provider := &fakeProvider{
		enrichWith: map[int64]catalog.Entry{496243: parasite()},
	}
	orch := New(store, provider, DefaultOptions(), nil)

	item := movieItem("anything", 0)
	item.TMDBID = 496243
	results := orch.ScrapeItems(context.Background(), []scanner.MediaFile{item}, nil)

	if !results[0].Matched {
		t.Fatalf("expected match, debug: %+v", results[0].Debug)
	}
	cached, err := store.GetByID(context.Background(), catalog.KindMovie, 496243)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if cached == nil {
		t.Fatal("enriched entry was not written back to the cache")
	}
}

func TestScrapeEmptyCacheNoProviderReportsDebug(t *testing.T) {
	store := testsupport.MustOpenStore(t)
	orch := New(store, nil, DefaultOptions(), nil)

	results := orch.ScrapeItems(context.Background(),
		[]scanner.MediaFile{movieItem("Parasite", 2019)}, nil)

	r := results[0]
	if r.Matched {
		t.Fatal("expected no match")
	}
	if r.Debug == nil || r.Debug.Reason != ReasonNoCacheResults {
		t.Fatalf("Debug = %+v, want reason %s", r.Debug, ReasonNoCacheResults)
	}
}

func TestScrapeEmptyCacheAndLiveComposesReason(t *testing.T) {
	store := testsupport.MustOpenStore(t)
	provider := &fakeProvider{}
	orch := New(store, provider, DefaultOptions(), nil)

	results := orch.ScrapeItems(context.Background(),
		[]scanner.MediaFile{movieItem("No Such Film Whatsoever", 0)}, nil)

	r := results[0]
	if r.Matched {
		t.Fatal("expected no match")
	}
	if r.Debug.Reason != ReasonNoResults {
		t.Fatalf("Reason = %q, want %s", r.Debug.Reason, ReasonNoResults)
	}
	if r.Debug.CacheCount != 0 || r.Debug.LiveCount != 0 {
		t.Fatalf("counts = %d/%d, want 0/0", r.Debug.CacheCount, r.Debug.LiveCount)
	}
}

func TestScrapeBelowThresholdReportsCacheCount(t *testing.T) {
	store := testsupport.MustOpenStore(t)
	testsupport.SeedEntries(t, store, catalog.Entry{
		ID:          624860,
		Kind:        catalog.KindMovie,
		Title:       "The Matrix Resurrections",
		ReleaseDate: "2021-12-16",
		Popularity:  50,
	})
	orch := New(store, nil, DefaultOptions(), nil)

	results := orch.ScrapeItems(context.Background(),
		[]scanner.MediaFile{movieItem("The Matrix", 0)}, nil)

	r := results[0]
	if r.Matched {
		t.Fatal("expected no match for a 0.42 similarity candidate")
	}
	if r.Debug.Reason != ReasonBelowThreshold {
		t.Fatalf("Reason = %q, want %s", r.Debug.Reason, ReasonBelowThreshold)
	}
	if r.Debug.CacheCount != 1 {
		t.Fatalf("CacheCount = %d, want 1", r.Debug.CacheCount)
	}
}

func TestScrapeYearCheckFailureReason(t *testing.T) {
	store := testsupport.MustOpenStore(t)
	testsupport.SeedEntries(t, store, catalog.Entry{
		ID:          409447,
		Kind:        catalog.KindMovie,
		Title:       "Parasites",
		ReleaseDate: "2016-11-22",
		Popularity:  5,
	})
	orch := New(store, nil, DefaultOptions(), nil)

	results := orch.ScrapeItems(context.Background(),
		[]scanner.MediaFile{movieItem("Parasite", 2019)}, nil)

	r := results[0]
	if r.Matched {
		t.Fatal("expected no match for a wrong-year 0.89 candidate")
	}
	if r.Debug.Reason != ReasonYearCheck {
		t.Fatalf("Reason = %q, want %s", r.Debug.Reason, ReasonYearCheck)
	}
	if r.Debug.BestTitle != "Parasites" {
		t.Fatalf("BestTitle = %q, want Parasites", r.Debug.BestTitle)
	}
}

func TestScrapeLiveFallbackCachesHit(t *testing.T) {
	store := testsupport.MustOpenStore(t)
	provider := &fakeProvider{
		searchWith: []catalog.Entry{parasite()},
		enrichWith: map[int64]catalog.Entry{496243: parasite()},
	}
	orch := New(store, provider, DefaultOptions(), nil)

	results := orch.ScrapeItems(context.Background(),
		[]scanner.MediaFile{movieItem("Parasite", 2019)}, nil)

	r := results[0]
	if !r.Matched || r.TMDBID != 496243 {
		t.Fatalf("expected live match, got %+v", r)
	}
	if r.Provenance != ProvenanceAPI {
		t.Fatalf("Provenance = %q, want api", r.Provenance)
	}
	if _, enriches := provider.calls(); enriches != 1 {
		t.Fatalf("enrich calls = %d, want 1", enriches)
	}
	cached, err := store.GetByID(context.Background(), catalog.KindMovie, 496243)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if cached == nil {
		t.Fatal("live hit was not written back to the cache")
	}
}

func TestScrapeSingleLiveResultTrustedAtReducedConfidence(t *testing.T) {
	store := testsupport.MustOpenStore(t)
	lone := catalog.Entry{
		ID:          603,
		Kind:        catalog.KindMovie,
		Title:       "An Entirely Different Name",
		ReleaseDate: "1999-03-31",
	}
	provider := &fakeProvider{
		searchWith: []catalog.Entry{lone},
		enrichWith: map[int64]catalog.Entry{603: lone},
	}
	orch := New(store, provider, DefaultOptions(), nil)

	results := orch.ScrapeItems(context.Background(),
		[]scanner.MediaFile{movieItem("The Matrix", 1999)}, nil)

	r := results[0]
	if !r.Matched {
		t.Fatalf("expected single result to be trusted, debug: %+v", r.Debug)
	}
	if r.Confidence != 0.7 {
		t.Fatalf("Confidence = %v, want 0.7", r.Confidence)
	}
	if r.Type != matching.MatchFuzzy {
		t.Fatalf("Type = %q, want fuzzy", r.Type)
	}
}

func TestScrapeMultipleWeakLiveResultsStayUnmatched(t *testing.T) {
	store := testsupport.MustOpenStore(t)
	provider := &fakeProvider{
		searchWith: []catalog.Entry{
			{ID: 1, Kind: catalog.KindMovie, Title: "Unrelated One", ReleaseDate: "2001-01-01"},
			{ID: 2, Kind: catalog.KindMovie, Title: "Unrelated Two", ReleaseDate: "2002-01-01"},
		},
	}
	orch := New(store, provider, DefaultOptions(), nil)

	results := orch.ScrapeItems(context.Background(),
		[]scanner.MediaFile{movieItem("The Matrix", 1999)}, nil)

	r := results[0]
	if r.Matched {
		t.Fatal("expected no match")
	}
	if r.Debug.Reason != ReasonBelowThreshold {
		t.Fatalf("Reason = %q, want %s", r.Debug.Reason, ReasonBelowThreshold)
	}
	if r.Debug.LiveCount != 2 {
		t.Fatalf("LiveCount = %d, want 2", r.Debug.LiveCount)
	}
}

func TestScrapeEmptyTitleSkipsLookups(t *testing.T) {
	store := testsupport.MustOpenStore(t)
	provider := &fakeProvider{}
	orch := New(store, provider, DefaultOptions(), nil)

	results := orch.ScrapeItems(context.Background(),
		[]scanner.MediaFile{movieItem("   ", 0)}, nil)

	r := results[0]
	if r.Matched || r.Debug.Reason != ReasonEmptyTitle {
		t.Fatalf("got %+v, want empty_title", r)
	}
	if searches, _ := provider.calls(); searches != 0 {
		t.Fatal("empty title should not reach the provider")
	}
}

func TestScrapeCancellationStopsBetweenItems(t *testing.T) {
	store := testsupport.MustOpenStore(t)
	orch := New(store, nil, DefaultOptions(), nil)

	items := []scanner.MediaFile{
		movieItem("First", 2000),
		movieItem("Second", 2001),
	}
	tracker := NewTracker(len(items))
	tracker.Cancel()

	results := orch.ScrapeItems(context.Background(), items, tracker)

	if len(results) != 0 {
		t.Fatalf("processed %d items after cancellation, want 0", len(results))
	}
	if got := tracker.Snapshot().Status; got != StatusCancelled {
		t.Fatalf("Status = %q, want cancelled", got)
	}
}

func TestScrapeTracksProgressCounters(t *testing.T) {
	store := testsupport.MustOpenStore(t)
	testsupport.SeedEntries(t, store, parasite())
	orch := New(store, nil, DefaultOptions(), nil)

	items := []scanner.MediaFile{
		movieItem("Parasite", 2019),
		movieItem("No Such Film Whatsoever", 0),
	}
	tracker := NewTracker(len(items))
	orch.ScrapeItems(context.Background(), items, tracker)

	p := tracker.Snapshot()
	if p.Status != StatusCompleted {
		t.Fatalf("Status = %q, want completed", p.Status)
	}
	if p.Processed != 2 || p.Matched != 1 || p.Unmatched != 1 {
		t.Fatalf("counters = %d/%d/%d, want 2/1/1", p.Processed, p.Matched, p.Unmatched)
	}
}
