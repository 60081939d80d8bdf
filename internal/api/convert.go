package api

import (
	"notesum/internal/summarizer"
	"notesum/internal/summary"
)

// FromSummary converts a stored summary to its API representation.
func FromSummary(record *summary.Summary) Summary {
	if record == nil {
		return Summary{}
	}
	dto := Summary{
		ID:             record.ID,
		OriginalText:   record.OriginalText,
		SummarizedText: record.SummarizedText,
		Bullets:        summarizer.ParseBullets(record.SummarizedText),
		Pinned:         record.IsPinned,
		Tags:           record.TagList(),
	}
	if !record.Timestamp.IsZero() {
		dto.CreatedAt = record.Timestamp.UTC().Format(dateTimeFormat)
		dto.Timestamp = record.Timestamp.UnixMilli()
	}
	if dto.Bullets == nil {
		dto.Bullets = []string{}
	}
	if dto.Tags == nil {
		dto.Tags = []string{}
	}
	return dto
}

// FromSummaries converts a slice of stored summaries, dropping nil entries.
func FromSummaries(records []*summary.Summary) []Summary {
	out := make([]Summary, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		out = append(out, FromSummary(record))
	}
	return out
}
