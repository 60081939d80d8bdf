// Package summarizer turns raw note text into a stored bullet-point summary.
//
// It owns the prompt wording, the mapping from a desired length to a style
// description, and the request lifecycle: blank input is rejected without a
// model call, only one request runs at a time (per process and, via an
// advisory file lock, across processes), failures surface a short message
// suitable for users, and successful summaries are persisted before being
// returned.
package summarizer
