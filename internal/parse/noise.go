package parse

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	reLeadingYear = regexp.MustCompile(`^(19|20)\d{2}`)

	// Technical residue that survives noise stripping: bare resolutions,
	// hex-ish hashes, codec fragments.
	reTechResidue = regexp.MustCompile(`(?i)^(\d{3,4}[pi]?|[0-9a-f]{8,}|cd\d+|disc\s?\d+|disk\s?\d+|sample)$`)
)

// IsNoiseTitle reports whether a parsed title looks like technical residue
// rather than a real title: too short, starting with a 4-digit year, carrying
// no letters at all, or matching a known residue shape. The scanner uses this
// to decide whether a folder name is a better title source than the file name.
func IsNoiseTitle(title string) bool {
	title = strings.TrimSpace(title)
	if utf8.RuneCountInString(title) < 2 {
		return true
	}
	if reLeadingYear.MatchString(title) {
		return true
	}

	hasLetter := false
	for _, r := range title {
		if unicode.IsLetter(r) {
			hasLetter = true
			break
		}
	}
	if !hasLetter {
		return true
	}
	return reTechResidue.MatchString(title)
}
