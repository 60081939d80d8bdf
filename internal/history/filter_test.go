package history_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notesum/internal/history"
	"notesum/internal/summary"
)

func fixture() []*summary.Summary {
	return []*summary.Summary{
		{ID: 3, OriginalText: "Quarterly budget review", SummarizedText: "- cut costs", Tags: "Work, finance"},
		{ID: 2, OriginalText: "Grocery list", SummarizedText: "- milk\n- eggs", Tags: "home"},
		{ID: 1, OriginalText: "Trip ideas", SummarizedText: "- visit Lisbon", Tags: "travel,work"},
		{ID: 0, OriginalText: "untagged", SummarizedText: "- nothing", Tags: ",,"},
	}
}

func ids(records []*summary.Summary) []int64 {
	out := make([]int64, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestFilterBlankQueryKeepsEverything(t *testing.T) {
	all := fixture()
	got := history.Filter(all, history.Criteria{Query: "   "})
	assert.Equal(t, []int64{3, 2, 1, 0}, ids(got))
}

func TestFilterQueryMatchesAnyFieldIgnoringCase(t *testing.T) {
	all := fixture()

	assert.Equal(t, []int64{3}, ids(history.Filter(all, history.Criteria{Query: "BUDGET"})))
	assert.Equal(t, []int64{2}, ids(history.Filter(all, history.Criteria{Query: "eggs"})))
	assert.Equal(t, []int64{3}, ids(history.Filter(all, history.Criteria{Query: "finance"})))
	assert.Equal(t, []int64{3, 1}, ids(history.Filter(all, history.Criteria{Query: "work"})))
	assert.Empty(t, history.Filter(all, history.Criteria{Query: "absent"}))
}

func TestFilterQueryUsesRawTagString(t *testing.T) {
	all := fixture()
	got := history.Filter(all, history.Criteria{Query: "Work, fin"})
	assert.Equal(t, []int64{3}, ids(got))
}

func TestFilterTagIsCaseInsensitiveExactMatch(t *testing.T) {
	all := fixture()

	assert.Equal(t, []int64{3, 1}, ids(history.Filter(all, history.Criteria{Tag: "work"})))
	assert.Equal(t, []int64{3, 1}, ids(history.Filter(all, history.Criteria{Tag: "WORK"})))
	assert.Empty(t, history.Filter(all, history.Criteria{Tag: "wor"}))
}

func TestFilterCombinesQueryAndTag(t *testing.T) {
	all := fixture()
	got := history.Filter(all, history.Criteria{Query: "lisbon", Tag: "work"})
	assert.Equal(t, []int64{1}, ids(got))
}

func TestFilterPreservesOrder(t *testing.T) {
	all := []*summary.Summary{
		{ID: 10, OriginalText: "note a"},
		{ID: 30, OriginalText: "note b"},
		{ID: 20, OriginalText: "note c"},
	}
	assert.Equal(t, []int64{10, 30, 20}, ids(history.Filter(all, history.Criteria{Query: "note"})))
}

func TestAvailableTags(t *testing.T) {
	all := fixture()
	all = append(all, &summary.Summary{ID: 9, Tags: "work, home"})

	tags := history.AvailableTags(all)
	require.Equal(t, []string{"Work", "finance", "home", "travel", "work"}, tags)
	assert.Equal(t, tags, history.AvailableTags(all), "AvailableTags must be idempotent")
}

func TestAvailableTagsEmpty(t *testing.T) {
	assert.Empty(t, history.AvailableTags(nil))
	assert.Empty(t, history.AvailableTags([]*summary.Summary{{Tags: " , "}}))
}

func TestMatchesQueryAndHasTagOnNil(t *testing.T) {
	assert.False(t, history.MatchesQuery(nil, "x"))
	assert.False(t, history.HasTag(nil, "x"))
	assert.True(t, history.MatchesQuery(&summary.Summary{}, ""))
}

func TestFilterMatchesQueryAsTyped(t *testing.T) {
	all := []*summary.Summary{
		{ID: 2, OriginalText: "meeting notes"},
		{ID: 1, OriginalText: "weekly meeting"},
	}

	assert.Equal(t, []int64{1}, ids(history.Filter(all, history.Criteria{Query: " meeting"})))
	assert.False(t, history.MatchesQuery(all[0], " meeting"))
	assert.Empty(t, history.Filter(all, history.Criteria{Query: "meeting "}))
	assert.Equal(t, []int64{2, 1}, ids(history.Filter(all, history.Criteria{Query: "meeting"})))
}

func TestCriteriaEffectiveQuery(t *testing.T) {
	assert.Equal(t, "", history.Criteria{Query: "  \t"}.EffectiveQuery())
	assert.Equal(t, " meeting", history.Criteria{Query: " meeting"}.EffectiveQuery())
}

func TestFilterTrimsSelectedTag(t *testing.T) {
	all := fixture()
	assert.Equal(t, []int64{2}, ids(history.Filter(all, history.Criteria{Tag: " home "})))
	assert.True(t, history.HasTag(all[1], "\thome"))
	assert.Equal(t, []int64{3, 2, 1, 0}, ids(history.Filter(all, history.Criteria{Tag: "  "})))

	view := history.NewView(nil)
	view.SetSummaries(all)
	snap := view.SetTag(" travel ")
	assert.Equal(t, []int64{1}, ids(snap.Summaries))
}
