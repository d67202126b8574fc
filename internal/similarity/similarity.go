// Package similarity normalizes titles and scores how close two of them are.
//
// Scores are in [0,1]: 1.0 for titles that are identical after normalization,
// otherwise 1 - editDistance/maxLength over the normalized forms. The engine
// is pure and deterministic; matching policy (thresholds, year handling)
// belongs to the matching package.
package similarity

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds a title to its comparable form: NFKC normalization (so
// full-width variants compare equal), lowercase, Unicode letters/digits/
// whitespace only, collapsed whitespace.
func Normalize(title string) string {
	title = norm.NFKC.String(title)
	title = strings.ToLower(title)

	var b strings.Builder
	b.Grow(len(title))
	prevSpace := false
	for _, r := range title {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r):
			if !prevSpace && b.Len() > 0 {
				b.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// Score compares two titles and returns a similarity in [0,1]. Identical
// normalized forms (including two empty strings) score exactly 1.0; anything
// else is 1 - levenshtein/maxRuneLength, which cannot leave [0,1] because the
// edit distance never exceeds the longer string.
func Score(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == nb {
		return 1.0
	}

	distance := fuzzy.LevenshteinDistance(na, nb)
	longest := utf8.RuneCountInString(na)
	if l := utf8.RuneCountInString(nb); l > longest {
		longest = l
	}
	return 1.0 - float64(distance)/float64(longest)
}
