// Package logging builds the process slog logger and provides the attribute
// helpers used across the codebase.
//
// Components take a *slog.Logger and tag their records via
// NewComponentLogger so log lines are filterable by subsystem. Tests and
// optional dependencies use NewNop.
package logging
