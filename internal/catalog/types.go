package catalog

import (
	"strconv"
	"strings"
)

// Kind distinguishes movie and TV catalog entries.
type Kind string

const (
	KindMovie Kind = "movie"
	KindTV    Kind = "tv"
)

// Valid reports whether the kind is one of the known media kinds.
func (k Kind) Valid() bool {
	return k == KindMovie || k == KindTV
}

// Entry is one movie/TV record in the metadata catalog.
type Entry struct {
	ID            int64
	Kind          Kind
	Title         string
	TitleCN       string
	OriginalTitle string
	ReleaseDate   string // YYYY-MM-DD, may be empty
	Popularity    float64
	Overview      string
	PosterPath    string
}

// Year returns the release year, or 0 when the release date is absent or
// malformed.
func (e Entry) Year() int {
	date := strings.TrimSpace(e.ReleaseDate)
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

// TitleVariants returns the non-empty title fields in a fixed order:
// primary, Chinese, original. Matching scores a name against every variant
// and keeps the best.
func (e Entry) TitleVariants() []string {
	variants := make([]string, 0, 3)
	for _, t := range []string{e.Title, e.TitleCN, e.OriginalTitle} {
		if strings.TrimSpace(t) != "" {
			variants = append(variants, t)
		}
	}
	return variants
}

// DisplayTitle prefers the Chinese title, falling back to the primary and
// original titles.
func (e Entry) DisplayTitle() string {
	for _, t := range []string{e.TitleCN, e.Title, e.OriginalTitle} {
		if strings.TrimSpace(t) != "" {
			return t
		}
	}
	return ""
}
