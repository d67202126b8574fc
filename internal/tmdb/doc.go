// Package tmdb provides a minimal client for The Movie Database API: title
// search for movies and TV, detail fetches by id, and translation lookups
// used to extract Chinese localized titles.
//
// Requests are rate limited client-side so batch scrapes that fall back to
// live search do not hammer the API. All calls take a context and surface
// request latency in error messages for operator diagnostics.
package tmdb
