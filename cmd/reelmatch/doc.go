// Package main hosts the reelmatch CLI entrypoint and command graph.
//
// The Cobra-based command tree covers library scanning, the scrape pipeline,
// file name parse inspection, catalog cache queries, and configuration
// scaffolding. It centralizes configuration resolution and structured logging
// setup so subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
