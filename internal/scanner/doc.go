// Package scanner walks library folders and produces media file records for
// the scrape pipeline.
//
// The walk filters hidden files and non-media extensions, parses a title and
// year out of each file name, and reads the contents of stream-pointer
// (.strm) files so downstream consumers know the playback URL. When a file
// name is pure technical noise ("1080p.mkv"), the scanner walks up the
// folder hierarchy: the containing folder, then a non-generic grandparent,
// often carries the real title in deeply nested library layouts.
//
// Traversal errors are logged and skipped; a partial scan is more useful
// than none.
package scanner
