package scrape

import (
	"context"
	"fmt"

	"reelmatch/internal/catalog"
	"reelmatch/internal/tmdb"
)

// Provider supplies live metadata lookups. A nil Provider restricts the
// pipeline to the local cache.
type Provider interface {
	// Search returns candidate entries for a title query. A year of 0 leaves
	// the search unconstrained.
	Search(ctx context.Context, kind catalog.Kind, query string, year int) ([]catalog.Entry, error)
	// Enrich fetches the full record for a known id, including localized
	// titles.
	Enrich(ctx context.Context, kind catalog.Kind, id int64) (*catalog.Entry, error)
}

// TMDBProvider adapts the TMDB client to the Provider interface.
type TMDBProvider struct {
	client *tmdb.Client
}

// NewTMDBProvider wraps a TMDB client.
func NewTMDBProvider(client *tmdb.Client) *TMDBProvider {
	return &TMDBProvider{client: client}
}

func (p *TMDBProvider) Search(ctx context.Context, kind catalog.Kind, query string, year int) ([]catalog.Entry, error) {
	opts := tmdb.SearchOptions{Year: year}

	var resp *tmdb.Response
	var err error
	switch kind {
	case catalog.KindTV:
		resp, err = p.client.SearchTV(ctx, query, opts)
	default:
		resp, err = p.client.SearchMovie(ctx, query, opts)
	}
	if err != nil {
		return nil, err
	}

	entries := make([]catalog.Entry, 0, len(resp.Results))
	for _, result := range resp.Results {
		entries = append(entries, tmdb.EntryFromResult(kind, result, ""))
	}
	return entries, nil
}

// Enrich fetches details plus Chinese translations for an id. A failed
// translation lookup degrades to an entry without a localized title rather
// than failing the whole item.
func (p *TMDBProvider) Enrich(ctx context.Context, kind catalog.Kind, id int64) (*catalog.Entry, error) {
	var result *tmdb.Result
	var translations *tmdb.Translations
	var err error

	switch kind {
	case catalog.KindTV:
		result, err = p.client.GetTVDetails(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("tv details for %d: %w", id, err)
		}
		translations, _ = p.client.GetTVTranslations(ctx, id)
	default:
		result, err = p.client.GetMovieDetails(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("movie details for %d: %w", id, err)
		}
		translations, _ = p.client.GetMovieTranslations(ctx, id)
	}

	entry := tmdb.EntryFromResult(kind, *result, tmdb.ChineseTitle(translations))
	return &entry, nil
}
