package matching

import (
	"sort"

	"reelmatch/internal/catalog"
	"reelmatch/internal/similarity"
)

// MatchType classifies how a candidate relates to the query.
type MatchType string

const (
	MatchExact        MatchType = "exact"
	MatchFuzzy        MatchType = "fuzzy"
	MatchYearMismatch MatchType = "year_mismatch"
)

// Candidate is one scored catalog entry.
type Candidate struct {
	Entry      catalog.Entry
	Similarity float64
	Type       MatchType
}

// Result is the outcome of one matching attempt. When Matched is true,
// TMDBID is the id of the selected candidate and Confidence its similarity.
type Result struct {
	Matched    bool
	TMDBID     int64
	Confidence float64
	Type       MatchType
	Candidates []Candidate
}

// Match scores entries against name (and year, 0 meaning unknown) and selects
// the best candidate under policy. It is pure and deterministic.
func Match(name string, year int, entries []catalog.Entry, policy Policy) Result {
	policy = policy.normalized()

	candidates := scoreCandidates(name, year, entries, policy)
	if len(candidates) == 0 {
		return Result{Candidates: []Candidate{}}
	}

	sortCandidates(candidates)

	if year > 0 {
		if result, ok := selectWithYear(year, candidates, policy); ok {
			return result
		}
		// Year known but nothing inside the tolerance window: fall through to
		// the top candidate, which keeps its year_mismatch label and must
		// clear the no-year bar.
	}
	return selectWithoutYear(candidates, policy)
}

// scoreCandidates computes each entry's best similarity across its title
// variants and keeps entries that clear the fuzzy threshold or match exactly.
func scoreCandidates(name string, year int, entries []catalog.Entry, policy Policy) []Candidate {
	candidates := make([]Candidate, 0, len(entries))
	for _, entry := range entries {
		best := 0.0
		for _, variant := range entry.TitleVariants() {
			if score := similarity.Score(name, variant); score > best {
				best = score
			}
		}

		matchType := MatchFuzzy
		if best == 1.0 {
			matchType = MatchExact
		}
		// A year conflict overrides the classification for sorting and
		// filtering; the similarity value itself is untouched.
		if year > 0 {
			if entryYear := entry.Year(); entryYear > 0 && entryYear != year {
				matchType = MatchYearMismatch
			}
		}

		if best < policy.FuzzyThreshold && best != 1.0 {
			continue
		}
		candidates = append(candidates, Candidate{Entry: entry, Similarity: best, Type: matchType})
	}
	return candidates
}

// sortCandidates orders by the composite key: exact similarity first,
// year-mismatched pushed last, then similarity descending. The sort is stable
// so equal candidates keep their input (popularity) order.
func sortCandidates(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		aExact, bExact := a.Similarity == 1.0, b.Similarity == 1.0
		if aExact != bExact {
			return aExact
		}
		aMismatch, bMismatch := a.Type == MatchYearMismatch, b.Type == MatchYearMismatch
		if aMismatch != bMismatch {
			return bMismatch
		}
		return a.Similarity > b.Similarity
	})
}

// selectWithYear filters candidates to release years within the tolerance of
// the parsed year and picks the first by sort order. Candidates flagged
// year_mismatch only because of an off-by-one year are demoted to fuzzy since
// the tolerance already accounts for that.
func selectWithYear(year int, candidates []Candidate, policy Policy) (Result, bool) {
	filtered := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		entryYear := c.Entry.Year()
		if entryYear == 0 {
			continue
		}
		if diff := entryYear - year; diff >= -policy.YearTolerance && diff <= policy.YearTolerance {
			if c.Type == MatchYearMismatch {
				c.Type = MatchFuzzy
			}
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == 0 {
		return Result{}, false
	}

	best := filtered[0]
	return Result{
		Matched:    true,
		TMDBID:     best.Entry.ID,
		Confidence: best.Similarity,
		Type:       best.Type,
		Candidates: limitCandidates(filtered, policy.MaxCandidates),
	}, true
}

// selectWithoutYear takes the top overall candidate and requires the no-year
// similarity floor, exact matches excepted. Top candidates are returned for
// diagnostics even when no match is declared.
func selectWithoutYear(candidates []Candidate, policy Policy) Result {
	best := candidates[0]
	retained := limitCandidates(candidates, policy.MaxCandidates)

	if best.Similarity < policy.NoYearFloor && best.Similarity != 1.0 {
		return Result{Candidates: retained}
	}
	return Result{
		Matched:    true,
		TMDBID:     best.Entry.ID,
		Confidence: best.Similarity,
		Type:       best.Type,
		Candidates: retained,
	}
}

func limitCandidates(candidates []Candidate, limit int) []Candidate {
	if len(candidates) <= limit {
		return candidates
	}
	return candidates[:limit]
}
