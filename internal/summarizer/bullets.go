package summarizer

import (
	"strings"
	"unicode"
)

// ParseBullets splits a summary into its bullet items. Lines starting with
// "-", "*", "•" or a number followed by "." or ")" begin a new item; other
// non-blank lines continue the previous one. Text without any bullet markers
// yields a single item.
func ParseBullets(text string) []string {
	var (
		items   []string
		current strings.Builder
	)
	flush := func() {
		if current.Len() > 0 {
			items = append(items, current.String())
			current.Reset()
		}
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if body, ok := stripBullet(line); ok {
			flush()
			current.WriteString(body)
			continue
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(line)
	}
	flush()
	return items
}

func stripBullet(line string) (string, bool) {
	if rest, ok := strings.CutPrefix(line, "•"); ok {
		return strings.TrimSpace(rest), true
	}
	if len(line) >= 2 && (line[0] == '-' || line[0] == '*') && unicode.IsSpace(rune(line[1])) {
		return strings.TrimSpace(line[2:]), true
	}
	digits := 0
	for digits < len(line) && line[digits] >= '0' && line[digits] <= '9' {
		digits++
	}
	if digits > 0 && digits+1 < len(line) && (line[digits] == '.' || line[digits] == ')') && unicode.IsSpace(rune(line[digits+1])) {
		return strings.TrimSpace(line[digits+2:]), true
	}
	return "", false
}
