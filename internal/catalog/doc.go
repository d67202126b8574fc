// Package catalog defines the metadata catalog model and its SQLite-backed
// local cache.
//
// Entries mirror the remote provider's movie/TV records: primary title,
// Chinese localized title, original title, release date, and a popularity
// score used to rank substring search results. The Store is the cache half of
// the scrape pipeline's cache-then-network strategy: scrape runs query it
// before touching the provider, and live provider hits are upserted back so
// subsequent runs resolve locally.
//
// The database lives under the configured cache directory. Schema changes
// bump schemaVersion in schema.go; mismatched databases are rejected rather
// than silently migrated.
package catalog
