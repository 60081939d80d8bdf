package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Slug converts value to a lowercase file-name-safe token. Runs of anything
// other than letters and digits collapse to a single hyphen. Empty results
// become fallback.
func Slug(value, fallback string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.TrimSpace(value) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		pendingDash = true
	}
	if b.Len() == 0 {
		return fallback
	}
	return b.String()
}

// Truncate shortens s to at most limit runes, collapsing whitespace and
// appending an ellipsis when cut.
func Truncate(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	if limit == 1 {
		return "…"
	}
	return strings.TrimSpace(string(runes[:limit-1])) + "…"
}
