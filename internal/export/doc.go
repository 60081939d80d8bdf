// Package export renders summaries as JSON, YAML or Markdown documents for
// sharing outside notesum.
package export
