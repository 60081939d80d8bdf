package summary

import (
	"database/sql"
	"time"
)

const summaryColumns = "id, original_text, summarized_text, timestamp, is_pinned, tags"

func scanSummary(scanner interface{ Scan(dest ...any) error }) (*Summary, error) {
	var (
		id          int64
		original    sql.NullString
		summarized  sql.NullString
		timestampMS sql.NullInt64
		pinned      sql.NullInt64
		tags        sql.NullString
	)
	if err := scanner.Scan(&id, &original, &summarized, &timestampMS, &pinned, &tags); err != nil {
		return nil, err
	}
	record := &Summary{
		ID:             id,
		OriginalText:   original.String,
		SummarizedText: summarized.String,
		Tags:           tags.String,
	}
	if timestampMS.Valid {
		record.Timestamp = fromMillis(timestampMS.Int64)
	}
	if pinned.Valid {
		record.IsPinned = pinned.Int64 != 0
	}
	return record, nil
}

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
