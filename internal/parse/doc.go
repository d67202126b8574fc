// Package parse extracts a candidate title and release year from raw media
// file and folder names.
//
// Local libraries accumulate names full of release metadata: resolution and
// codec tokens, source tags, release-group suffixes, PT-site uploader
// prefixes, and mixed Chinese/English titles. Parse strips that noise through
// an ordered rule catalog and then attempts year extraction, degrading to a
// best-effort cleaned string rather than failing. The noise catalog lives in
// rules.go as data so new tokens can be added and tested without touching the
// parsing driver.
//
// Callers that need multiple search terms from a bilingual title can use
// SplitMixedTitle, and IsNoiseTitle reports whether a parsed title is likely
// technical residue rather than a real title (the scanner uses this to walk
// up the folder hierarchy looking for a better source).
package parse
