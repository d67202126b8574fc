package parse

import (
	"strings"
	"unicode"
)

// SplitMixedTitle detects a bilingual title composed of a contiguous CJK run
// and a Latin run (in either order) and returns the original plus both parts,
// deduplicated. Titles without that shape come back as a single-element slice.
//
// Callers use the parts as independent search terms: a PT-site name like
// "寄生虫 Parasite" should hit the catalog under either title.
func SplitMixedTitle(title string) []string {
	title = strings.TrimSpace(title)
	if title == "" {
		return []string{title}
	}

	cjk, latin := splitRuns(title)
	if cjk == "" || latin == "" {
		return []string{title}
	}

	terms := []string{title}
	for _, part := range []string{cjk, latin} {
		if part != title && !containsString(terms, part) {
			terms = append(terms, part)
		}
	}
	return terms
}

// splitRuns partitions the title into a leading run and a trailing run when
// one side is CJK and the other Latin. Mixed interleavings return empty parts.
func splitRuns(title string) (cjk, latin string) {
	runes := []rune(title)

	boundary := -1
	startCJK := isCJKRune(runes[0])
	for i, r := range runes {
		if unicode.IsSpace(r) || isNeutralRune(r) {
			continue
		}
		if isCJKRune(r) != startCJK {
			boundary = i
			break
		}
	}
	if boundary <= 0 {
		return "", ""
	}

	head := strings.TrimSpace(trimNeutral(string(runes[:boundary])))
	tail := strings.TrimSpace(trimNeutral(string(runes[boundary:])))
	if head == "" || tail == "" {
		return "", ""
	}

	// The tail must be homogeneous; "中文 English 中文" is not a clean split.
	for _, r := range tail {
		if unicode.IsSpace(r) || isNeutralRune(r) {
			continue
		}
		if isCJKRune(r) == startCJK {
			return "", ""
		}
	}

	if startCJK {
		return head, tail
	}
	return tail, head
}

// ContainsCJK reports whether s contains at least one CJK rune.
func ContainsCJK(s string) bool {
	for _, r := range s {
		if isCJKRune(r) {
			return true
		}
	}
	return false
}

func isCJKRune(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) ||
		unicode.Is(unicode.Hangul, r)
}

// isNeutralRune covers digits and punctuation that belong to whichever run
// they appear in ("2046", "少林足球2").
func isNeutralRune(r rune) bool {
	return unicode.IsDigit(r) || r == ':' || r == '：' || r == '·' || r == '-' || r == '\'' || r == '&' || r == ',' || r == '.' || r == '!' || r == '?'
}

func trimNeutral(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return isNeutralRune(r) && !unicode.IsDigit(r)
	})
}

func containsString(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
