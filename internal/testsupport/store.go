package testsupport

import (
	"context"
	"testing"
	"time"

	"notesum/internal/config"
	"notesum/internal/summary"
)

// MustOpenStore opens a summary.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *summary.Store {
	t.Helper()

	store, err := summary.Open(cfg)
	if err != nil {
		t.Fatalf("summary.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewSummary inserts a summary for tests. Timestamps are offset by the
// supplied number of minutes from a fixed base so ordering is deterministic.
func NewSummary(t testing.TB, store *summary.Store, original, summarized, tags string, minute int) *summary.Summary {
	t.Helper()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	record, err := store.Insert(context.Background(), &summary.Summary{
		OriginalText:   original,
		SummarizedText: summarized,
		Tags:           tags,
		Timestamp:      base.Add(time.Duration(minute) * time.Minute),
	})
	if err != nil {
		t.Fatalf("store.Insert: %v", err)
	}
	return record
}
