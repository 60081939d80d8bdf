// Package logs reads the notesum log file for `notesum logs`.
//
// Last returns the trailing lines that pass a Filter together with the byte
// offset where reading stopped. Follow resumes from that offset and emits new
// lines as the file grows, restarting from the top when the file is
// truncated. Both console and JSON log lines are understood.
package logs
