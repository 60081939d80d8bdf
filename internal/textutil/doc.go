// Package textutil provides small text helpers shared by the history,
// export and CLI layers: term vectors for finding related notes, slugs for
// export file names, and rune-safe truncation for previews.
//
// Tokens are case-folded runs of letters and digits; tokens shorter than
// three runes are dropped.
package textutil
