// Package services defines shared utilities consumed by the summarizer, the
// OCR pipeline, and external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp summary IDs, operation names, and correlation
//     identifiers for logging and tracing.
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent CLI messages and HTTP status codes.
//
// Use these helpers when wiring new integrations so operational behaviour
// (error handling, observability) stays uniform across commands.
package services
