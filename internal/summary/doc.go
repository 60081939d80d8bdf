// Package summary persists summarized notes in SQLite.
//
// The Store owns the database connection, applies the embedded migrations in
// order, and exposes the create/read/update/delete operations used by the
// CLI, the HTTP API and the history view. Records are returned newest first.
//
// Tags are stored as a single comma-separated column; use ParseTags and
// JoinTags at the boundary rather than splitting the raw string ad hoc.
package summary
