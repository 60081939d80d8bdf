// Package api defines wire-format types and services for the HTTP API and
// the CLI's --json output. It translates stored summaries into
// transport-friendly DTOs so consumers never couple to the storage model.
//
// # Key Types
//
// Summary: transport representation of a stored note with parsed tags and
// bullet items.
//
// SummaryList: filtered summaries plus the tag vocabulary for the unfiltered
// set.
//
// Status: runtime information reported by GET /api/status and
// `notesum status --json`.
//
// # Services
//
// SummaryService wraps a store with the history filter and maps store
// failures onto the services error markers, so the HTTP layer can derive a
// status code with services.HTTPStatus.
//
// # Design Notes
//
// JSON uses snake_case keys. Timestamps are RFC3339 with milliseconds in
// created_at, and the raw unix-millisecond value is kept in timestamp.
package api
