package history_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notesum/internal/history"
	"notesum/internal/summary"
)

type stubSource struct {
	summaries []*summary.Summary
	err       error
	calls     int
}

func (s *stubSource) List(context.Context) ([]*summary.Summary, error) {
	s.calls++
	return s.summaries, s.err
}

func TestViewRecomputesOnEachSetter(t *testing.T) {
	view := history.NewView(nil)
	snap := view.SetSummaries(fixture())
	assert.Len(t, snap.Summaries, 4)
	assert.Equal(t, 4, snap.Total)
	assert.Equal(t, []string{"Work", "finance", "home", "travel", "work"}, snap.Tags)

	snap = view.SetQuery("grocery")
	assert.Equal(t, []int64{2}, ids(snap.Summaries))

	view.SetQuery("")
	snap = view.SetTag("travel")
	assert.Equal(t, []int64{1}, ids(snap.Summaries))
	assert.Equal(t, "travel", snap.Criteria.Tag)

	snap = view.ClearTag()
	assert.Len(t, snap.Summaries, 4)
	assert.Equal(t, view.Snapshot().Criteria, history.Criteria{})
}

func TestViewRefreshPullsFromSource(t *testing.T) {
	source := &stubSource{summaries: fixture()}
	view := history.NewView(source)

	snap, err := view.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, source.calls)
	assert.Len(t, snap.Summaries, 4)
}

func TestViewRefreshKeepsPreviousOnError(t *testing.T) {
	source := &stubSource{summaries: fixture()}
	view := history.NewView(source)
	_, err := view.Refresh(context.Background())
	require.NoError(t, err)

	source.err = errors.New("disk gone")
	snap, err := view.Refresh(context.Background())
	require.Error(t, err)
	assert.Len(t, snap.Summaries, 4)
}

func TestSubscribeReceivesLatestSnapshot(t *testing.T) {
	view := history.NewView(nil)
	updates, cancel := view.Subscribe()
	defer cancel()

	view.SetSummaries(fixture())
	view.SetQuery("grocery")
	view.SetQuery("trip")

	select {
	case snap := <-updates:
		assert.Equal(t, "trip", snap.Criteria.Query)
		assert.Equal(t, []int64{1}, ids(snap.Summaries))
	case <-time.After(time.Second):
		t.Fatal("expected a snapshot")
	}

	select {
	case snap := <-updates:
		t.Fatalf("expected intermediate snapshots to be dropped, got %+v", snap.Criteria)
	default:
	}
}

func TestCancelClosesChannel(t *testing.T) {
	view := history.NewView(nil)
	updates, cancel := view.Subscribe()
	cancel()
	cancel()

	_, ok := <-updates
	assert.False(t, ok)

	view.SetQuery("after cancel")
}
