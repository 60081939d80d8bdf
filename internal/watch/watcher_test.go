package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notesum/internal/logging"
	"notesum/internal/watch"
)

func waitSignal(t *testing.T, ch <-chan struct{}, timeout time.Duration) bool {
	t.Helper()
	select {
	case _, ok := <-ch:
		return ok
	case <-time.After(timeout):
		return false
	}
}

func TestMatchesDatabaseAndJournals(t *testing.T) {
	w := watch.New("/data/notesum.db", 0, logging.NewNop())
	assert.True(t, w.Matches("/data/notesum.db"))
	assert.True(t, w.Matches("/data/notesum.db-wal"))
	assert.True(t, w.Matches("/data/notesum.db-shm"))
	assert.False(t, w.Matches("/data/summarize.lock"))
	assert.False(t, w.Matches("/data/other.db"))
}

func TestRunSignalsOnDatabaseWrite(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "notesum.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("seed"), 0o644))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	w := watch.New(dbPath, 20*time.Millisecond, logging.NewNop())
	signals, err := w.Run(ctx)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(dbPath+"-wal", []byte{byte(i)}, 0o644))
	}
	assert.True(t, waitSignal(t, signals, 2*time.Second), "expected a refresh signal")
}

func TestRunIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "notesum.db")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	w := watch.New(dbPath, 20*time.Millisecond, logging.NewNop())
	signals, err := w.Run(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "summarize.lock"), nil, 0o644))
	assert.False(t, waitSignal(t, signals, 200*time.Millisecond), "unexpected refresh signal")
}

func TestRunClosesChannelOnCancel(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())

	w := watch.New(filepath.Join(dir, "notesum.db"), 0, logging.NewNop())
	signals, err := w.Run(ctx)
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-signals:
		assert.False(t, ok, "expected closed channel")
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestRunMissingDirectory(t *testing.T) {
	w := watch.New(filepath.Join(t.TempDir(), "missing", "notesum.db"), 0, logging.NewNop())
	_, err := w.Run(context.Background())
	assert.Error(t, err)
}
