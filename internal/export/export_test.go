package export_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"notesum/internal/export"
	"notesum/internal/history"
	"notesum/internal/services"
	"notesum/internal/summary"
)

var exportedAt = time.Date(2024, 3, 2, 9, 30, 0, 0, time.UTC)

func records() []*summary.Summary {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return []*summary.Summary{
		{ID: 2, OriginalText: "quarterly budget review\nwith finance", SummarizedText: "- cut costs\n- hire later", Tags: "work,finance", IsPinned: true, Timestamp: base.Add(time.Minute)},
		{ID: 1, OriginalText: "grocery list", SummarizedText: "Buy milk.", Tags: "home", Timestamp: base},
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]export.Format{"": export.FormatMarkdown, "MD": export.FormatMarkdown, "json": export.FormatJSON, "yml": export.FormatYAML} {
		got, err := export.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := export.ParseFormat("pdf")
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestBuildAppliesCriteria(t *testing.T) {
	doc := export.Build(records(), history.Criteria{Tag: "WORK"}, exportedAt)
	require.Len(t, doc.Summaries, 1)
	assert.Equal(t, 1, doc.Count)
	entry := doc.Summaries[0]
	assert.Equal(t, int64(2), entry.ID)
	assert.Equal(t, []string{"cut costs", "hire later"}, entry.Bullets)
	assert.Equal(t, []string{"work", "finance"}, entry.Tags)
	assert.True(t, entry.Pinned)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, export.FormatJSON, export.Build(records(), history.Criteria{}, exportedAt)))

	var decoded export.Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 2, decoded.Count)
	assert.Equal(t, "grocery list", decoded.Summaries[1].Original)
	assert.True(t, decoded.GeneratedAt.Equal(exportedAt))
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, export.FormatYAML, export.Build(records(), history.Criteria{Query: "milk"}, exportedAt)))

	assert.Contains(t, buf.String(), "query: milk")
	var decoded export.Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Summaries, 1)
	assert.Equal(t, int64(1), decoded.Summaries[0].ID)
	assert.Equal(t, []string{"Buy milk."}, decoded.Summaries[0].Bullets)
}

func TestMarkdown(t *testing.T) {
	md := export.Markdown(export.Build(records(), history.Criteria{}, exportedAt))

	assert.True(t, strings.HasPrefix(md, "# Summaries\n"))
	assert.Contains(t, md, "2 notes_")
	assert.Contains(t, md, "## Quarterly Budget Review\n")
	assert.Contains(t, md, "pinned · `work` `finance`")
	assert.Contains(t, md, "- cut costs\n- hire later\n")
	assert.Contains(t, md, "> with finance\n")
	assert.Contains(t, md, "## Grocery List\n")
}

func TestFileName(t *testing.T) {
	doc := export.Build(records(), history.Criteria{Tag: "Work Stuff"}, exportedAt)
	assert.Equal(t, "notesum-work-stuff-20240302.yaml", export.FileName(export.FormatYAML, doc))
	assert.Equal(t, "notesum-all-20240302.md", export.FileName(export.FormatMarkdown, export.Build(nil, history.Criteria{}, exportedAt)))
}
