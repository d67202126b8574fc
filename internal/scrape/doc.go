// Package scrape orchestrates the matching pipeline over a set of scanned
// media files.
//
// Each file is processed serially: a known external id short-circuits the
// lookup, otherwise the local catalog cache is searched first and the live
// metadata provider is consulted only when the cache yields no acceptable
// match. Live hits are written back to the cache so repeat scrapes stay
// offline. Files that cannot be matched carry diagnostic details explaining
// why.
//
// A Runner guards the pipeline so at most one scrape job runs at a time,
// with cooperative cancellation and progress reporting through a Tracker.
package scrape
