package tmdb

import (
	"strings"

	"reelmatch/internal/catalog"
)

// PickTitle returns the primary display title of a result, which TMDB names
// differently for movies and TV shows.
func PickTitle(result Result) string {
	if result.Title != "" {
		return result.Title
	}
	return result.Name
}

func pickOriginalTitle(result Result) string {
	if result.OriginalTitle != "" {
		return result.OriginalTitle
	}
	return result.OriginalName
}

func pickReleaseDate(result Result) string {
	if result.ReleaseDate != "" {
		return result.ReleaseDate
	}
	return result.FirstAirDate
}

// ChineseTitle extracts the first Chinese localized title from a translation
// list, preferring Simplified (CN) over other Chinese regions.
func ChineseTitle(translations *Translations) string {
	if translations == nil {
		return ""
	}
	regions := []string{"CN", "SG", "TW", "HK"}
	for _, region := range regions {
		for _, tr := range translations.Translations {
			if tr.ISO639 != "zh" || tr.ISO3166 != region {
				continue
			}
			if title := firstNonEmpty(tr.Data.Title, tr.Data.Name); title != "" {
				return title
			}
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// EntryFromResult converts a TMDB result into a catalog entry. cnTitle may be
// empty when no translation lookup was performed or none existed.
func EntryFromResult(kind catalog.Kind, result Result, cnTitle string) catalog.Entry {
	return catalog.Entry{
		ID:            result.ID,
		Kind:          kind,
		Title:         strings.TrimSpace(PickTitle(result)),
		TitleCN:       strings.TrimSpace(cnTitle),
		OriginalTitle: strings.TrimSpace(pickOriginalTitle(result)),
		ReleaseDate:   strings.TrimSpace(pickReleaseDate(result)),
		Popularity:    result.Popularity,
		Overview:      result.Overview,
		PosterPath:    result.PosterPath,
	}
}
