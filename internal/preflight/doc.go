// Package preflight reports whether notesum is ready to run.
//
// "notesum status" and GET /api/status use these checks: data directory
// permissions, summary database health, LLM credentials (optionally a live
// request) and the OCR binary. Checks never fail hard; each returns a Result
// describing what was found.
package preflight
