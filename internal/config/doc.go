// Package config loads and validates the TOML configuration file.
//
// Load reads an explicit path or the default location under the user config
// directory, layers the file over Default(), and validates the result. A
// missing file is not an error; the defaults apply and the TMDB section stays
// empty, which puts scrapes into cache-only mode.
package config
