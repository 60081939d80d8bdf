// Package logging assembles structured slog loggers and formatting helpers used
// across notesum commands and the API server.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so summarizer and API code can
// automatically tag log lines with summary IDs, operations, and correlation
// IDs. The package also provides a no-op logger for tests and wiring code that
// cannot fail.
package logging
