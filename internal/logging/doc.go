// Package logging constructs slog loggers for bookfetch.
//
// Loggers write human-readable console output or JSON, optionally teeing
// into a log file under the configured log directory. Component loggers
// carry a standardized "component" attribute so mixed output from the
// catalog, downloader, and ledger stays attributable.
package logging
