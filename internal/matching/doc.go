// Package matching ranks catalog candidates against a parsed local title and
// selects the best match under a deterministic policy.
//
// Match is a pure function: identical inputs always produce identical output.
// Each catalog entry is scored against every available title variant (primary,
// Chinese, original) keeping the maximum; candidates clear a fuzzy threshold
// or are exact matches, then sort by a stable composite key (exact first,
// year-mismatched last, similarity descending). When the caller supplies a
// year, candidates within ±1 win; without a year the top candidate needs a
// higher similarity floor since there is no year corroboration.
//
// Policy constants live in policy.go so the thresholds stay independently
// testable and tunable.
package matching
