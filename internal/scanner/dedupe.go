package scanner

import (
	"fmt"

	"reelmatch/internal/similarity"
)

// DeduplicateByTitle collapses files that parsed to the same title and year,
// keeping one representative per group. Local container files win over strm
// pointers since they carry real playback data; otherwise the first file
// seen wins. Input order is preserved for the survivors.
func DeduplicateByTitle(files []MediaFile) []MediaFile {
	index := make(map[string]int, len(files))
	out := make([]MediaFile, 0, len(files))
	for _, f := range files {
		key := dedupeKey(f)
		i, seen := index[key]
		if !seen {
			index[key] = len(out)
			out = append(out, f)
			continue
		}
		if out[i].IsStrm && !f.IsStrm {
			out[i] = f
		}
	}
	return out
}

func dedupeKey(f MediaFile) string {
	return fmt.Sprintf("%s|%d|%s", similarity.Normalize(f.ParsedTitle), f.ParsedYear, f.Kind)
}
