// Package main hosts the notesum CLI.
//
// Commands open the summary database directly; "notesum serve" exposes the
// same operations over HTTP. Configuration is resolved once per invocation
// by commandContext, and logs go to stderr and the log file so stdout stays
// usable for --json output and pipes.
package main
