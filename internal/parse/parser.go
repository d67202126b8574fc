package parse

import (
	"strings"
)

// ParsedName is the result of parsing one raw file or folder name.
// Year is 0 when no release year could be extracted.
type ParsedName struct {
	Title string
	Year  int
}

// Parse extracts a candidate title and year from a raw name. It never returns
// an empty title: names that are pure noise degrade to a cleaned copy of the
// raw input so callers can try alternate title sources.
func Parse(raw string) ParsedName {
	name := strings.TrimSpace(raw)
	if name == "" {
		return ParsedName{Title: raw}
	}

	name = stripExtension(name)
	name = stripLeadingTags(name)

	noiseHits := 0
	for _, r := range noiseRules {
		stripped := r.re.ReplaceAllString(name, r.repl)
		if stripped != name {
			noiseHits++
			name = stripped
		}
	}
	if noiseHits > 0 {
		for _, r := range ambiguousRules {
			name = r.re.ReplaceAllString(name, r.repl)
		}
		name = reTrailingGroup.ReplaceAllString(name, " ")
	}

	name = stripBracketGroups(name)
	name = collapseSeparators(name)

	title, year := extractYear(name)
	title = strings.TrimSpace(title)
	if title == "" {
		title = residualTitle(raw)
	}
	return ParsedName{Title: title, Year: year}
}

func stripExtension(name string) string {
	return reFileExt.ReplaceAllString(name, "")
}

func stripLeadingTags(name string) string {
	for {
		next := reLeadingBracketTag.ReplaceAllString(name, "")
		next = reLeadingAtUser.ReplaceAllString(next, "")
		if next == name {
			return name
		}
		name = next
	}
}

// stripBracketGroups removes every bracketed, braced, or parenthesized group
// except a parenthesized 4-digit year, which extractYear consumes later.
func stripBracketGroups(name string) string {
	return reBracketGroup.ReplaceAllStringFunc(name, func(group string) string {
		if reParenYear.MatchString(group) {
			return group
		}
		return " "
	})
}

func collapseSeparators(name string) string {
	name = reSeparators.ReplaceAllString(name, " ")
	name = reSpaces.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// extractYear applies the two ordered year patterns: "<title> (YYYY)" at end
// of string, then "<title> YYYY" followed by whitespace or end. First match
// wins; with no match the full cleaned string is the title.
func extractYear(name string) (string, int) {
	if m := reTitleYearParen.FindStringSubmatch(name); m != nil {
		return m[1], atoiYear(m[2])
	}
	if m := reTitleYearBare.FindStringSubmatch(name); m != nil {
		if title := strings.TrimSpace(m[1]); title != "" {
			return title, atoiYear(m[2])
		}
	}
	return name, 0
}

func atoiYear(s string) int {
	year := 0
	for _, r := range s {
		year = year*10 + int(r-'0')
	}
	return year
}

// residualTitle is the non-empty fallback when stripping consumed everything:
// the original raw name with only the extension and separator runs removed.
func residualTitle(raw string) string {
	name := stripExtension(strings.TrimSpace(raw))
	name = collapseSeparators(name)
	if name == "" {
		return strings.TrimSpace(raw)
	}
	return name
}
