package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"notesum/internal/logging"
)

const defaultDebounce = 250 * time.Millisecond

// Watcher emits a signal whenever the database at dbPath changes.
type Watcher struct {
	dir      string
	base     string
	debounce time.Duration
	logger   *slog.Logger
}

// New constructs a watcher for dbPath. A non-positive debounce uses the
// default window.
func New(dbPath string, debounce time.Duration, logger *slog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &Watcher{
		dir:      filepath.Dir(dbPath),
		base:     filepath.Base(dbPath),
		debounce: debounce,
		logger:   logging.NewComponentLogger(logger, "watch"),
	}
}

// Matches reports whether name refers to the database or one of its
// journal files.
func (w *Watcher) Matches(name string) bool {
	return strings.HasPrefix(filepath.Base(name), w.base)
}

// Run starts watching. The returned channel receives one value per debounced
// burst of changes and is closed when ctx is cancelled or the underlying
// watcher fails.
func (w *Watcher) Run(ctx context.Context) (<-chan struct{}, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(w.dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", w.dir, err)
	}

	out := make(chan struct{}, 1)
	go w.loop(ctx, fsw, out)
	w.logger.Debug("watching database", logging.String("dir", w.dir), logging.String("file", w.base))
	return out, nil
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, out chan struct{}) {
	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
		_ = fsw.Close()
		close(out)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			pending = timer.C
		case <-pending:
			pending = nil
			notify(out)
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.logger.Warn("watch event overflow; forcing refresh")
				notify(out)
				continue
			}
			w.logger.Warn("watch error", logging.Error(err))
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !w.Matches(event.Name) {
		return false
	}
	return event.Op != fsnotify.Chmod
}

func notify(out chan struct{}) {
	select {
	case out <- struct{}{}:
	default:
	}
}
