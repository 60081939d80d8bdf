package history

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"notesum/internal/summary"
)

// Criteria selects which summaries are visible. A blank Query and a blank
// Tag disable their respective filters. A non-blank Query is matched as
// typed, surrounding whitespace included.
type Criteria struct {
	Query string `json:"query,omitempty"`
	Tag   string `json:"tag,omitempty"`
}

// HasTagFilter reports whether a tag is selected.
func (c Criteria) HasTagFilter() bool {
	return strings.TrimSpace(c.Tag) != ""
}

// HasQuery reports whether the query is non-blank.
func (c Criteria) HasQuery() bool {
	return strings.TrimSpace(c.Query) != ""
}

// EffectiveQuery returns the query used for matching, or "" when blank.
func (c Criteria) EffectiveQuery() string {
	if !c.HasQuery() {
		return ""
	}
	return c.Query
}

// Filter applies the query and tag criteria, preserving input order.
func Filter(summaries []*summary.Summary, criteria Criteria) []*summary.Summary {
	out := make([]*summary.Summary, 0, len(summaries))
	for _, record := range summaries {
		if record == nil {
			continue
		}
		if criteria.HasQuery() && !MatchesQuery(record, criteria.Query) {
			continue
		}
		if criteria.HasTagFilter() && !HasTag(record, criteria.Tag) {
			continue
		}
		out = append(out, record)
	}
	return out
}

// MatchesQuery reports whether the original text, the summary or the raw tag
// string contains query ignoring case. A blank query matches everything.
func MatchesQuery(record *summary.Summary, query string) bool {
	if record == nil {
		return false
	}
	if strings.TrimSpace(query) == "" {
		return true
	}
	folder := cases.Fold()
	needle := folder.String(query)
	for _, field := range []string{record.OriginalText, record.SummarizedText, record.Tags} {
		if strings.Contains(folder.String(field), needle) {
			return true
		}
	}
	return false
}

// HasTag reports whether any parsed tag equals tag ignoring case and
// surrounding whitespace.
func HasTag(record *summary.Summary, tag string) bool {
	if record == nil {
		return false
	}
	folder := cases.Fold()
	want := folder.String(strings.TrimSpace(tag))
	for _, candidate := range record.TagList() {
		if folder.String(candidate) == want {
			return true
		}
	}
	return false
}

// AvailableTags returns the distinct tags across summaries sorted ascending.
// Distinctness is exact string match, so "Work" and "work" both appear.
func AvailableTags(summaries []*summary.Summary) []string {
	seen := make(map[string]struct{})
	tags := make([]string, 0)
	for _, record := range summaries {
		for _, tag := range record.TagList() {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags
}
