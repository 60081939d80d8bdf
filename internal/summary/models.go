package summary

import (
	"strings"
	"time"
)

// Summary is one stored note together with its model-generated summary.
type Summary struct {
	ID             int64
	OriginalText   string
	SummarizedText string
	Timestamp      time.Time
	IsPinned       bool
	// Tags is the raw comma-separated tag string as stored.
	Tags string
}

// TagList returns the parsed tags for the summary.
func (s *Summary) TagList() []string {
	if s == nil {
		return nil
	}
	return ParseTags(s.Tags)
}

// Clone returns a copy of the summary.
func (s *Summary) Clone() *Summary {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}

// ParseTags splits a stored tag string on commas, trimming whitespace and
// dropping empty pieces. Malformed input such as ",," yields no tags.
func ParseTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	pieces := strings.Split(raw, ",")
	tags := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		if trimmed := strings.TrimSpace(piece); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}

// JoinTags produces the stored representation of a tag list. Blank entries
// are dropped and duplicates keep their first position.
func JoinTags(tags []string) string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		for _, piece := range ParseTags(tag) {
			if _, ok := seen[piece]; ok {
				continue
			}
			seen[piece] = struct{}{}
			out = append(out, piece)
		}
	}
	return strings.Join(out, ",")
}

// DatabaseHealth describes the state of the summary database for diagnostics.
type DatabaseHealth struct {
	DBPath           string
	DatabaseExists   bool
	DatabaseReadable bool
	SchemaVersion    string
	LatestMigration  string
	TotalSummaries   int
	IntegrityCheck   bool
	Error            string
}
